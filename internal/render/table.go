package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/flexreport/internal/frame"
)

// TableRow renders one row of a LaTeX tabular:
//
//	1.0 & $10 \times M$ & 0.8000 & 0.7500 \\ \hline
func TableRow(label string, k int, cells []string) string {
	return fmt.Sprintf(`%s & $%d \times M$ & %s \\ \hline`, label, k, strings.Join(cells, " & "))
}

// Cells formats every value with sig significant digits.
func Cells(vals []float64, sig int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = StdNotation(v, sig)
	}
	return out
}

// ChartFile names a chart for a (size, phi) pair. Minus signs in phi
// become "n" so names stay shell friendly.
func ChartFile(prefix, size, phi string) string {
	return fmt.Sprintf("%s-%s-PHI-%s.png", prefix, size, strings.ReplaceAll(phi, "-", "n"))
}

// ChartFileK is ChartFile with the task multiplier appended.
func ChartFileK(prefix, size, phi string, k int) string {
	return fmt.Sprintf("%s-%s-PHI-%s-k-%d.png", prefix, size, strings.ReplaceAll(phi, "-", "n"), k)
}

// Dump prints a titled, column-aligned view of f for manual review.
func Dump(w io.Writer, title string, f *frame.Frame) error {
	if title != "" {
		fmt.Fprintln(w, title)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := f.Names()
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	cells := make([]string, len(names))
	for r := 0; r < f.Len(); r++ {
		for i, n := range names {
			v, err := f.Value(n, r)
			if err != nil {
				return err
			}
			cells[i] = dumpCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if f.Len() == 0 {
		fmt.Fprintln(tw, "(no rows)")
	}
	return tw.Flush()
}

func dumpCell(v frame.Value) string {
	if v.Kind != frame.Float || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return v.String()
	}
	return strconv.FormatFloat(v.Num, 'f', 6, 64)
}
