package analysis

import (
	"fmt"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/signalnine/flexreport/internal/result"
)

const (
	colReserveRatio = "reserve_ratio"
	colSuccessRatio = "success_ratio"
)

// BranchAndBound compares the running time of the search without
// bounding (and with bounding but no sorting) against the full branch
// and bound, trial by trial.
func (a *Analyzer) BranchAndBound(f *frame.Frame, grid string, phi frame.Value) (*Section, error) {
	sel, err := f.Filter(branchBoundScope(grid, phi)...)
	if err != nil {
		return nil, err
	}
	if sel.Len() == 0 {
		return nil, nil
	}
	size, err := a.mapSize(sel)
	if err != nil {
		return nil, err
	}
	phiStr := phi.String()
	file := render.ChartFile("BB", size, phiStr)
	title := fmt.Sprintf("Branch and Bound: %s Map, Phi=%s", size, phiStr)
	logger.Info(title, "chart", file)

	sorted, err := sel.Filter(bbSorted...)
	if err != nil {
		return nil, err
	}
	boundOnly, err := sel.Filter(bbBoundOnly...)
	if err != nil {
		return nil, err
	}
	none, err := sel.Filter(bbNone...)
	if err != nil {
		return nil, err
	}
	noBB, err := timeMultiplier(none, sorted, "_no", "_sort")
	if err != nil {
		return nil, err
	}
	onlyBound, err := timeMultiplier(boundOnly, sorted, "_bound", "_sort")
	if err != nil {
		return nil, err
	}

	baseX, err := sorted.Floats(result.ColTaskNum)
	if err != nil {
		return nil, err
	}
	boundSeries, err := meanRatioSeries("only bound", onlyBound, "task_num_sort", "time_ms_bound", "time_ms_sort", render.Ring)
	if err != nil {
		return nil, err
	}
	noBBSeries, err := meanRatioSeries("no branch and bound", noBB, "task_num_sort", "time_ms_no", "time_ms_sort", render.Cross)
	if err != nil {
		return nil, err
	}
	chart := &render.Chart{
		Title:  title,
		XLabel: "tasks number",
		YLabel: "running time multiplier",
		LogY:   true,
		Series: []render.Series{
			{Label: "branch and bound (baseline)", X: baseX, Y: render.Constant(baseX, 1), Line: true},
			boundSeries,
			noBBSeries,
		},
	}
	if _, err := chart.Save(a.PlotsDir, file); err != nil {
		return nil, err
	}

	rows, err := selectSorted(noBB, result.ColAgent, result.ColTaskPerAgent,
		"task_num_sort", "time_ms_no", "time_ms_sort", colRatio)
	if err != nil {
		return nil, err
	}
	if err := a.dump(title, rows); err != nil {
		return nil, err
	}
	block, err := a.rowsByTaskMultiplier(rows, phi, colRatio)
	if err != nil {
		return nil, err
	}
	return &Section{Size: result.MapSize(grid, a.SmallMap), Phi: phi, Blocks: [][]string{block}, Rows: rows}, nil
}

// timeMultiplier pairs two configurations and averages, per (agent,
// task_per_agent), the ratio of their running times.
func timeMultiplier(slow, base *frame.Frame, slowSuffix, baseSuffix string) (*frame.Frame, error) {
	j, err := Join(slow, base, slowSuffix, baseSuffix)
	if err != nil {
		return nil, err
	}
	j, err = j.Div(result.ColTimeMS+slowSuffix, result.ColTimeMS+baseSuffix, colRatio)
	if err != nil {
		return nil, err
	}
	return j.GroupMean(result.ColAgent, result.ColTaskPerAgent)
}

// meanRatioSeries plots num/den of the group means against x.
func meanRatioSeries(label string, f *frame.Frame, x, num, den string, g render.Glyph) (render.Series, error) {
	cols, err := floats(f, x, num, den)
	if err != nil {
		return render.Series{}, err
	}
	return render.Series{Label: label, X: cols[0], Y: Ratio(cols[1], cols[2]), Glyph: g}, nil
}

// DummyPath compares reserving paths for every agent against dynamic
// reservation: the running-time multiplier and the reservations spent
// per successful task.
func (a *Analyzer) DummyPath(f *frame.Frame, grid string, phi frame.Value) (*Section, error) {
	if err := result.CheckColumns(f, result.ColReserve); err != nil {
		return nil, fmt.Errorf("dummy path analysis: %w", err)
	}
	sel, err := f.Filter(dummyPathScope(grid, phi)...)
	if err != nil {
		return nil, err
	}
	if sel.Len() == 0 {
		return nil, nil
	}
	size, err := a.mapSize(sel)
	if err != nil {
		return nil, err
	}
	phiStr := phi.String()
	file := render.ChartFile("DP", size, phiStr)
	title := fmt.Sprintf("Dummy Path: %s Map, Phi=%s", size, phiStr)
	logger.Info(title, "chart", file)

	dynamic, err := sel.Filter(off(result.ColReserveAll))
	if err != nil {
		return nil, err
	}
	all, err := sel.Filter(on(result.ColReserveAll))
	if err != nil {
		return nil, err
	}
	j, err := Join(dynamic, all, "_dynamic", "_all")
	if err != nil {
		return nil, err
	}
	if j, err = j.Div("time_ms_all", "time_ms_dynamic", colRatio); err != nil {
		return nil, err
	}
	if j, err = j.Div("reserve_dynamic", "task_success_dynamic", colReserveRatio); err != nil {
		return nil, err
	}
	g, err := j.GroupMean(result.ColAgent, result.ColTaskPerAgent)
	if err != nil {
		return nil, err
	}

	cols, err := floats(g, "task_num_dynamic", colRatio)
	if err != nil {
		return nil, err
	}
	baseX, ys := cols[0], cols[1]
	series := []render.Series{
		{Label: "dynamic reserve (baseline)", X: baseX, Y: render.Constant(baseX, 1), Line: true},
	}
	byAgent, err := g.Groups(result.ColAgent)
	if err != nil {
		return nil, err
	}
	for _, grp := range byAgent {
		s := render.Series{Label: fmt.Sprintf("reserve all (N=%s)", grp.Key[0]), Glyph: render.Cross}
		for _, r := range grp.Rows {
			s.X = append(s.X, baseX[r])
			s.Y = append(s.Y, ys[r])
		}
		series = append(series, s)
	}
	chart := &render.Chart{Title: title, XLabel: "tasks number", YLabel: "running time multiplier", Series: series}
	if _, err := chart.Save(a.PlotsDir, file); err != nil {
		return nil, err
	}

	rows, err := selectSorted(g, result.ColAgent, result.ColTaskPerAgent,
		"task_num_all", "time_ms_all", "time_ms_dynamic", colRatio,
		"reserve_dynamic", "task_success_dynamic", colReserveRatio)
	if err != nil {
		return nil, err
	}
	if err := a.dump(title, rows); err != nil {
		return nil, err
	}
	ratioRows, err := a.rowsByTaskMultiplier(rows, phi, colRatio)
	if err != nil {
		return nil, err
	}
	reserveRows, err := a.rowsByTaskMultiplier(rows, phi, colReserveRatio)
	if err != nil {
		return nil, err
	}
	return &Section{
		Size:   result.MapSize(grid, a.SmallMap),
		Phi:    phi,
		Blocks: [][]string{ratioRows, reserveRows},
		Rows:   rows,
	}, nil
}

// Recalculate compares success counts with the extra-cost term on
// against off.
func (a *Analyzer) Recalculate(f *frame.Frame, grid string, phi frame.Value) (*Section, error) {
	sel, err := f.Filter(recalcScope(grid, phi)...)
	if err != nil {
		return nil, err
	}
	if sel.Len() == 0 {
		return nil, nil
	}
	size, err := a.mapSize(sel)
	if err != nil {
		return nil, err
	}
	phiStr := phi.String()
	file := render.ChartFile("RC", size, phiStr)
	title := fmt.Sprintf("Recalculate: %s Map, Phi=%s", size, phiStr)
	logger.Info(title, "chart", file)

	j, err := Pair(sel, result.ColEC, "_on", "_off")
	if err != nil {
		return nil, err
	}
	if j, err = j.Div("task_success_on", "task_success_off", colSuccessRatio); err != nil {
		return nil, err
	}
	g, err := j.GroupMean(result.ColAgent, result.ColTaskPerAgent)
	if err != nil {
		return nil, err
	}

	cols, err := floats(g, "task_num_on", colSuccessRatio)
	if err != nil {
		return nil, err
	}
	xs, ys := cols[0], cols[1]
	chart := &render.Chart{
		Title:  title,
		XLabel: "tasks number",
		YLabel: "success multiplier",
		Series: []render.Series{
			{Label: "no extra cost (baseline)", X: xs, Y: render.Constant(xs, 1), Line: true},
			{Label: "extra cost", X: xs, Y: ys, Glyph: render.Cross},
		},
	}
	if _, err := chart.Save(a.PlotsDir, file); err != nil {
		return nil, err
	}

	rows, err := selectSorted(g, result.ColAgent, result.ColTaskPerAgent,
		"task_num_on", "task_success_on", "task_success_off", "time_ms_on", "time_ms_off", colSuccessRatio)
	if err != nil {
		return nil, err
	}
	if err := a.dump(title, rows); err != nil {
		return nil, err
	}
	block, err := a.rowsByTaskMultiplier(rows, phi, colSuccessRatio)
	if err != nil {
		return nil, err
	}
	return &Section{Size: result.MapSize(grid, a.SmallMap), Phi: phi, Blocks: [][]string{block}, Rows: rows}, nil
}

// NearestEC prints mean outcomes for every nearest/extra-cost
// combination. It renders no table rows.
func (a *Analyzer) NearestEC(f *frame.Frame, grid string, phi frame.Value) (*Section, error) {
	conds := join(at(grid, phi), flexBaseline(), []frame.Predicate{
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel), off(result.ColReserveAll),
		on(result.ColSkip), on(result.ColTaskBound), on(result.ColRecalc),
	})
	sel, err := f.Filter(conds...)
	if err != nil {
		return nil, err
	}
	if sel.Len() == 0 {
		return nil, nil
	}
	size, err := a.mapSize(sel)
	if err != nil {
		return nil, err
	}
	g, err := sel.GroupMean(result.ColAgent, result.ColTaskPerAgent, result.ColNearest, result.ColEC)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Nearest & Extra Cost: %s Map, Phi=%s", size, phi)
	if err := a.dump(title, g); err != nil {
		return nil, err
	}
	return &Section{Size: result.MapSize(grid, a.SmallMap), Phi: phi, Rows: g}, nil
}
