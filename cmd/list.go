package cmd

import (
	"fmt"
	"slices"

	"github.com/signalnine/flexreport/internal/report"
	"github.com/signalnine/flexreport/internal/result"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List analyses and the (map size, phi) pairs in the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Analyses:")
			for _, name := range report.Analyses {
				mark := " "
				if slices.Contains(a.cfg.Analyses, name) {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %s\n", mark, name)
			}

			f, err := result.Load(a.cfg.Input)
			if err != nil {
				return err
			}
			pairs, err := report.Pairs(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPairs in %s:\n", a.cfg.Input)
			for _, p := range pairs {
				note := ""
				if p.Skipped() {
					note = " (skipped)"
				}
				fmt.Fprintf(out, "  - %s [%s] phi=%s rows=%d%s\n",
					p.Grid, result.MapSize(p.Grid, a.cfg.SmallMap), p.Phi, p.Rows, note)
			}
			return nil
		},
	}
}
