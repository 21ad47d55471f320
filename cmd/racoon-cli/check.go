package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tu10ng/racoon/internal/driver"
)

func newCheckCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.sy>...",
		Short: "Parse and type-check SysY sources without building IR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			opts := driver.OptionsFromConfig(g.cfg)
			opts.OutDir = ""
			opts.CheckOnly = true

			results, err := driver.CompileFiles(cmd.Context(), args, opts)
			failed := reportResults(cmd.ErrOrStderr(), results)
			if err != nil {
				return err
			}
			return summarize(cmd.ErrOrStderr(), len(results), failed, time.Since(start))
		},
	}
}
