// Package analysis holds the report sections: each one selects rows for
// a fixed experimental condition, derives ratios, draws a chart and
// returns LaTeX rows for the orchestrator to collect.
package analysis

import (
	"fmt"
	"io"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/signalnine/flexreport/internal/result"
)

// Analyzer carries the output locations and formatting shared by every
// section.
type Analyzer struct {
	PlotsDir string
	SmallMap string
	// Digits is the number of significant digits in table rows.
	Digits int
	// Out receives diagnostic dumps.
	Out io.Writer
}

// Section is the outcome of one analysis for one (size, phi) pair.
// Blocks[i] holds the LaTeX rows of the i-th metric.
type Section struct {
	Size   string
	Phi    frame.Value
	Blocks [][]string
	Rows   *frame.Frame
}

// Method is a scheduler configuration compared on the charts.
type Method struct {
	Name      string
	Scheduler string
	Window    int
	Glyph     render.Glyph
}

var Methods = []Method{
	{Name: "edf", Scheduler: result.SchedulerEDF, Window: 0, Glyph: render.Ring},
	{Name: "flex", Scheduler: result.SchedulerFlex, Window: 0, Glyph: render.Cross},
	{Name: "window", Scheduler: result.SchedulerFlex, Window: 20, Glyph: render.Dot},
}

func (m Method) Select(f *frame.Frame) (*frame.Frame, error) {
	return f.Filter(frame.Eq(result.ColScheduler, m.Scheduler), frame.Eq(result.ColWindow, m.Window))
}

func on(col string) frame.Predicate  { return frame.Eq(col, true) }
func off(col string) frame.Predicate { return frame.Eq(col, false) }

// completed drops failed runs, which carry a negative time.
func completed() frame.Predicate {
	return frame.Ge(result.ColTimeMS, 0)
}

func at(grid string, phi frame.Value) []frame.Predicate {
	return []frame.Predicate{
		frame.Eq(result.ColSize, grid),
		frame.Eq(result.ColPhi, phi),
		completed(),
	}
}

// flexBaseline is the flex scheduler without a window, the configuration
// every feature comparison runs on.
func flexBaseline() []frame.Predicate {
	return []frame.Predicate{
		frame.Eq(result.ColScheduler, result.SchedulerFlex),
		frame.Eq(result.ColWindow, 0),
	}
}

func join(parts ...[]frame.Predicate) []frame.Predicate {
	var out []frame.Predicate
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// mapSize returns the size letter when f holds exactly one grid, and ""
// otherwise.
func (a *Analyzer) mapSize(f *frame.Frame) (string, error) {
	grids, err := f.Unique(result.ColSize)
	if err != nil {
		return "", err
	}
	if len(grids) != 1 {
		return "", nil
	}
	return result.MapSize(grids[0].Str, a.SmallMap), nil
}

func (a *Analyzer) dump(title string, f *frame.Frame) error {
	if a.Out == nil {
		return nil
	}
	return render.Dump(a.Out, title, f)
}

// rowsByTaskMultiplier renders one table row per task_per_agent value,
// listing col for every agent count in that group.
func (a *Analyzer) rowsByTaskMultiplier(f *frame.Frame, phi frame.Value, col string) ([]string, error) {
	groups, err := f.Groups(result.ColTaskPerAgent)
	if err != nil {
		return nil, err
	}
	vals, err := f.Floats(col)
	if err != nil {
		return nil, err
	}
	rows := make([]string, 0, len(groups))
	for _, g := range groups {
		cells := make([]float64, len(g.Rows))
		for i, r := range g.Rows {
			cells[i] = vals[r]
		}
		rows = append(rows, render.TableRow(phi.String(), int(g.Key[0].Num), render.Cells(cells, a.Digits)))
	}
	return rows, nil
}

func selectSorted(f *frame.Frame, cols ...string) (*frame.Frame, error) {
	sel, err := f.Select(cols...)
	if err != nil {
		return nil, fmt.Errorf("selecting report columns: %w", err)
	}
	return sel.Sort(result.ColAgent, result.ColTaskPerAgent)
}

// floats fetches several numeric columns at once.
func floats(f *frame.Frame, names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, n := range names {
		vals, err := f.Floats(n)
		if err != nil {
			return nil, err
		}
		out[i] = vals
	}
	return out, nil
}
