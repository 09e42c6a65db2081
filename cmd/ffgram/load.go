package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/nihei9/ffgram/grammar"
	"github.com/nihei9/ffgram/log"
)

const stdinPath = "-"

type loaded struct {
	path string
	gram *grammar.Grammar
}

// expandPaths resolves each argument as a doublestar pattern. An argument
// without glob syntax is kept even when it does not exist so that opening it
// reports the real error. Standard input can be named only once.
func expandPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinPath}, nil
	}

	var paths []string
	stdinSeen := false
	for _, arg := range args {
		if arg == stdinPath {
			if stdinSeen {
				return nil, fmt.Errorf("standard input can be read only once; argument: %q", arg)
			}
			stdinSeen = true
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if isLiteralPath(arg) {
				paths = append(paths, arg)
				continue
			}
			return nil, fmt.Errorf("no grammar files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func isLiteralPath(arg string) bool {
	return !strings.ContainsAny(arg, "*?[{\\")
}

// loadGrammars reads and solves every grammar. Results keep the order of
// paths.
func loadGrammars(ctx context.Context, stdin io.Reader, paths []string, jobs int) ([]*loaded, error) {
	results := make([]*loaded, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gram, err := loadGrammar(stdin, path)
			if err != nil {
				return fmt.Errorf("%v: %w", path, err)
			}
			log.Info("loaded a grammar; path: %v, terminals: %v, non-terminals: %v", path, len(gram.Terminals()), len(gram.NonTerminals()))
			results[i] = &loaded{
				path: path,
				gram: gram,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func loadGrammar(stdin io.Reader, path string) (*grammar.Grammar, error) {
	if path == stdinPath {
		return grammar.NewGrammar(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return grammar.NewGrammar(f)
}
