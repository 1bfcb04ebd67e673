package cmd

import (
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var analyses []string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run analyses and print LaTeX table rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(analyses) == 0 {
				analyses = a.cfg.Analyses
			}
			return a.report(cmd, analyses)
		},
	}
	cmd.Flags().StringSliceVarP(&analyses, "analysis", "a", nil,
		"analyses to run (tasks, branch-bound, dummy-path, recalc, nearest-ec, phi, average) [default: from config]")
	return cmd
}
