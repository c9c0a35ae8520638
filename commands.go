package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"go.creack.net/exprtree/ast"
	"go.creack.net/exprtree/codec"
	"go.creack.net/exprtree/eval"
	"go.creack.net/exprtree/parser"
	"go.creack.net/exprtree/printer"
)

// parseArgs parses every argument before anything is printed.
func parseArgs(args []string) ([]ast.Node, error) {
	nodes := make([]ast.Node, 0, len(args))
	for _, arg := range args {
		n, err := parser.Parse(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", arg)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (a *app) evaluate(n ast.Node) string {
	e := &eval.Evaluator{Logger: a.logger}
	return strconv.FormatFloat(e.Evaluate(n), 'g', a.cfg.Output.Precision, 64)
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Print the value of each expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := parseArgs(args)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				fmt.Fprintln(cmd.OutOrStdout(), a.evaluate(n))
			}
			return nil
		},
	}
}

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "print EXPR...",
		Short: "Print each expression fully parenthesized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := parseArgs(args)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				fmt.Fprintln(cmd.OutOrStdout(), printer.Print(n))
			}
			return nil
		},
	}
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save EXPR...",
		Short: "Print the tagged serialization of each expression, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := parseArgs(args)
			if err != nil {
				return err
			}
			enc := codec.NewEncoder(cmd.OutOrStdout())
			for _, n := range nodes {
				if err := enc.Encode(n); err != nil {
					return errors.Wrap(err, "encode")
				}
			}
			a.logger.Debug("saved trees", "count", len(nodes))
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load [FILE]",
		Short: "Read tagged trees from FILE or stdin and print each with its value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrapf(err, "open %q", args[0])
				}
				defer func() { _ = f.Close() }() // Best effort, read only.
				r = f
			}

			dec := codec.NewDecoder(r, codec.WithLogger(a.logger))
			for count := 0; ; count++ {
				n, err := dec.Decode()
				if errors.Is(err, io.EOF) {
					a.logger.Debug("loaded trees", "count", count)
					return nil
				}
				if err != nil {
					return errors.Wrapf(err, "tree %d", count)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", printer.Print(n), a.evaluate(n))
			}
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump EXPR",
		Short: "Print the Go structure of the parsed tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := parseArgs(args)
			if err != nil {
				return err
			}
			_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", nodes[0])
			return err
		},
	}
}
