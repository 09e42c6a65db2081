package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		return 1
	}

	return 0
}
