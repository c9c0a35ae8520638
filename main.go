package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"go.creack.net/exprtree/config"
)

type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exprtree",
		Short: "Parse, evaluate, print and serialize arithmetic expressions",
		Long: `exprtree works on infix expressions made of numbers, single letter
variables and the operators + - * / ^ (no parentheses, no unary minus).

A variable evaluates to the code point of its letter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every evaluation and decoding step")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored error output")

	rootCmd.AddCommand(
		newEvalCmd(a),
		newPrintCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newDumpCmd(a),
	)
	return rootCmd
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(stderr, a.verbose)
	a.logger.Debug("config loaded", slog.String("file", a.cfgFile), slog.String("level", cfg.Log.Level))
	return nil
}

func (a *app) colorEnabled() bool {
	if a.noColor {
		return false
	}
	return a.cfg == nil || a.cfg.Output.Color
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		printError(stderr, err, a.colorEnabled())
		return 1
	}
	return 0
}

func printError(w io.Writer, err error, colored bool) {
	prefix := color.New(color.FgRed, color.Bold)
	hint := color.New(color.FgYellow)
	if !colored {
		prefix.DisableColor()
		hint.DisableColor()
	}
	prefix.Fprint(w, "error: ")
	fmt.Fprintf(w, "%s\n", err)
	for _, h := range errors.GetAllHints(err) {
		hint.Fprintf(w, "hint: %s\n", h)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
