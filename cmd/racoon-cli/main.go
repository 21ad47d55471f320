// SPDX-License-Identifier: Apache-2.0
package main

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"github.com/tu10ng/racoon/internal/config"
)

var version = "0.1.0"

// errCompilationFailed is returned once the diagnostics have been printed.
var errCompilationFailed = goerrors.New("compilation failed")

// globalOptions holds the persistent flags and the configuration they select.
type globalOptions struct {
	color      string
	configPath string
	verbose    int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "racoon",
		Short:         "SysY compiler middle end",
		Long:          `racoon parses and checks SysY sources and lowers them to an LLVM-flavoured IR`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to racoon.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))

	return rootCmd
}

// setup loads the configuration, then applies the color mode and the log
// verbosity. Flags win over racoon.toml.
func (o *globalOptions) setup() error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	if err := applyColorMode(o.color, isTerminal(os.Stderr)); err != nil {
		return err
	}

	commonlog.Configure(max(o.verbose, o.cfg.Log.Verbosity), nil)
	return nil
}

// applyColorMode sets the global color switch used by the reporter.
func applyColorMode(mode string, tty bool) error {
	switch mode {
	case "auto":
		color.NoColor = color.NoColor || !tty
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !goerrors.Is(err, errCompilationFailed) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
		}
		os.Exit(1)
	}
}
