package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nihei9/ffgram/grammar"
)

type view string

const (
	viewAll         = view("all")
	viewFirst       = view("first")
	viewFollow      = view("follow")
	viewProductions = view("productions")
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	return newViewCmd(opts, viewAll, "analyze", "Print productions, nullable symbols, FIRST and FOLLOW sets")
}

func newFirstCmd(opts *options) *cobra.Command {
	return newViewCmd(opts, viewFirst, "first", "Print the FIRST set of every non-terminal")
}

func newFollowCmd(opts *options) *cobra.Command {
	return newViewCmd(opts, viewFollow, "follow", "Print the FOLLOW set of every non-terminal")
}

func newProductionsCmd(opts *options) *cobra.Command {
	return newViewCmd(opts, viewProductions, "productions", "Print the productions of the augmented grammar")
}

func newViewCmd(opts *options, v view, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [file|pattern]...",
		Short: short,
		Long: short + `.

Each argument is a grammar file or a doublestar pattern such as grammars/**/*.y.
With no arguments, or with "-", the grammar is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts, v, args)
		},
	}
}

func runView(ctx context.Context, stdin io.Reader, w io.Writer, opts *options, v view, args []string) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	results, err := loadGrammars(ctx, stdin, paths, opts.jobs)
	if err != nil {
		return err
	}

	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(genOutputs(results, v)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(genOutputs(results, v)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		writeText(w, results, v)
	}

	return nil
}

// output is the structured form of one grammar. Fields outside the requested
// view are left empty and omitted.
type output struct {
	Path         string                      `json:"path" yaml:"path"`
	Start        string                      `json:"start,omitempty" yaml:"start,omitempty"`
	Accept       string                      `json:"accept,omitempty" yaml:"accept,omitempty"`
	Terminals    []string                    `json:"terminals,omitempty" yaml:"terminals,omitempty"`
	NonTerminals []string                    `json:"non_terminals,omitempty" yaml:"non_terminals,omitempty"`
	Productions  []*grammar.ProductionReport `json:"productions,omitempty" yaml:"productions,omitempty"`
	Nullable     []string                    `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	First        []*grammar.SetReport        `json:"first,omitempty" yaml:"first,omitempty"`
	Follow       []*grammar.SetReport        `json:"follow,omitempty" yaml:"follow,omitempty"`
}

func genOutputs(results []*loaded, v view) []*output {
	outs := make([]*output, 0, len(results))
	for _, res := range results {
		r := grammar.GenReport(res.gram)
		out := &output{
			Path: res.path,
		}
		switch v {
		case viewFirst:
			out.First = r.First
		case viewFollow:
			out.Follow = r.Follow
		case viewProductions:
			out.Productions = r.Productions
		default:
			out.Start = r.Start
			out.Accept = r.Accept
			out.Terminals = r.Terminals
			out.NonTerminals = r.NonTerminals
			out.Productions = r.Productions
			out.Nullable = r.Nullable
			out.First = r.First
			out.Follow = r.Follow
		}
		outs = append(outs, out)
	}
	return outs
}

func writeText(w io.Writer, results []*loaded, v view) {
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %v <==\n", res.path)
		}

		switch v {
		case viewFirst:
			grammar.PrintFirst(w, res.gram)
		case viewFollow:
			grammar.PrintFollow(w, res.gram)
		case viewProductions:
			grammar.PrintProductions(w, res.gram)
		default:
			fmt.Fprintln(w, "Productions:")
			grammar.PrintProductions(w, res.gram)
			fmt.Fprintln(w)
			fmt.Fprint(w, "Nullable:")
			for _, sym := range res.gram.Nullable() {
				fmt.Fprintf(w, " %v", sym)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "FIRST:")
			grammar.PrintFirst(w, res.gram)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "FOLLOW:")
			grammar.PrintFollow(w, res.gram)
		}
	}
}
