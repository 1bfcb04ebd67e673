package cmd

import (
	"fmt"
	"strings"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/report"
	"github.com/signalnine/flexreport/internal/result"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the results table before reporting",
		Long: "Loads the results table, checks the required columns and reports failed runs and\n" +
			"trials that a paired analysis (branch-bound, dummy-path, recalc) would join more than once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := result.Load(a.cfg.Input)
			if err != nil {
				return err
			}
			fd, err := report.Check(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %d failed, %d (size, phi) pairs\n", a.cfg.Input, fd.Rows, fd.Failed, len(fd.Pairs))
			if !f.Has(result.ColReserve) {
				logger.Warn("no reserve column; dummy-path analysis will fail", "path", a.cfg.Input)
			}
			for _, d := range fd.Duplicates {
				fmt.Fprintf(out, "  duplicate in %s [%s] %s phi=%s: %s\n",
					d.Analysis, d.Side, d.Grid, d.Phi, describeKey(fd.KeyColumns, d.Key))
			}
			if !fd.OK() {
				return fmt.Errorf("%d duplicate trial keys in %s: %w", len(fd.Duplicates), a.cfg.Input, frame.ErrDuplicateKey)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func describeKey(names []string, vals []frame.Value) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + "=" + vals[i].String()
	}
	return strings.Join(parts, ",")
}
