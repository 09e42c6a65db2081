package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nihei9/ffgram/log"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type options struct {
	format    string
	verbosity int
	logFile   string
	jobs      int
}

func (o *options) validate() error {
	switch o.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format: %s (expected %s, %s or %s)", o.format, formatText, formatJSON, formatYAML)
	}
	if o.jobs < 1 {
		return fmt.Errorf("jobs must be at least 1; jobs: %v", o.jobs)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "ffgram",
		Short:        "Compute FIRST and FOLLOW sets of context-free grammars",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return log.Init(opts.verbosity, opts.logFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return log.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json, yaml)")
	cmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "log more (repeat for debug output)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	cmd.PersistentFlags().IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of grammar files analyzed at once")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newFirstCmd(opts))
	cmd.AddCommand(newFollowCmd(opts))
	cmd.AddCommand(newProductionsCmd(opts))

	return cmd
}
