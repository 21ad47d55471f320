package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tu10ng/racoon/internal/config"
	"github.com/tu10ng/racoon/internal/driver"
)

// stdoutDir as the output directory prints the results instead of writing files.
const stdoutDir = "-"

func newBuildCmd(g *globalOptions) *cobra.Command {
	var (
		outDir string
		emit   string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "build <file.sy>...",
		Short: "Compile SysY sources to IR",
		Long:  `Compile each source independently and write <name>.ll (or <name>.ast with --emit ast) into the output directory`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			opts := driver.OptionsFromConfig(g.cfg)
			if cmd.Flags().Changed("output") {
				opts.OutDir = outDir
			}
			if cmd.Flags().Changed("emit") {
				if emit != config.EmitIR && emit != config.EmitAST {
					return fmt.Errorf("invalid --emit %q (want %s or %s)", emit, config.EmitIR, config.EmitAST)
				}
				opts.Emit = emit
			}
			if cmd.Flags().Changed("jobs") {
				opts.Jobs = jobs
			}

			toStdout := opts.OutDir == stdoutDir
			if toStdout {
				opts.OutDir = ""
			}

			results, err := driver.CompileFiles(cmd.Context(), args, opts)
			failed := reportResults(cmd.ErrOrStderr(), results)
			if err != nil {
				return err
			}

			if toStdout {
				for _, r := range results {
					if r.Result == nil || r.Failed() {
						continue
					}
					if opts.Emit == config.EmitAST {
						fmt.Fprintln(cmd.OutOrStdout(), r.Program.String())
					} else {
						fmt.Fprint(cmd.OutOrStdout(), r.IR())
					}
				}
			}

			return summarize(cmd.ErrOrStderr(), len(results), failed, time.Since(start))
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", `output directory, "-" for stdout (default from racoon.toml, else ".")`)
	cmd.Flags().StringVar(&emit, "emit", config.EmitIR, "what to write: ir or ast")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files compiled at once (0 = GOMAXPROCS)")

	return cmd
}
