package analysis

import (
	"fmt"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/signalnine/flexreport/internal/result"
)

const colRatio = "ratio"

// TaskColumns are the columns kept in the per-size CSV summary.
var TaskColumns = []string{
	result.ColAgent, result.ColTaskPerAgent, result.ColTaskNum, result.ColPhi,
	result.ColRecalc, result.ColTaskSuccess, colRatio, result.ColTimeMS,
}

func taskConditions(grid string, phi frame.Value, k int) []frame.Predicate {
	return join(at(grid, phi), []frame.Predicate{
		frame.Eq(result.ColTaskPerAgent, k),
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel),
		off(result.ColReserveAll),
		frame.Eq(result.ColScheduler, result.SchedulerFlex),
		on(result.ColRecalc), off(result.ColNearest), off(result.ColEC),
		on(result.ColRetry),
	})
}

// TaskRows is the outcome of TasksVsSuccess for one k. Rows is nil when
// no run matched.
type TaskRows struct {
	Ratio   string
	Seconds string
	Rows    *frame.Frame
}

// TasksVsSuccess charts the flex scheduler's success rate against the
// agent count for one (grid, phi, k) and renders the success-rate and
// running-time (seconds) table rows.
func (a *Analyzer) TasksVsSuccess(f *frame.Frame, grid string, phi frame.Value, k int) (TaskRows, error) {
	withRatio, err := SuccessRate(f, colRatio)
	if err != nil {
		return TaskRows{}, err
	}
	sel, err := withRatio.Filter(taskConditions(grid, phi, k)...)
	if err != nil {
		return TaskRows{}, err
	}
	size, err := a.mapSize(sel)
	if err != nil || size == "" {
		return TaskRows{}, err
	}

	phiStr := phi.String()
	file := render.ChartFileK("SR", size, phiStr, k)
	title := fmt.Sprintf("Success Rate: %s Map, Phi=%s, k=%d", size, phiStr, k)
	logger.Info(title, "chart", file)

	grouped, err := sel.GroupMean(result.ColAgent, result.ColTaskPerAgent, result.ColScheduler)
	if err != nil {
		return TaskRows{}, err
	}
	flex, err := Methods[1].Select(grouped)
	if err != nil {
		return TaskRows{}, err
	}
	cols, err := floats(flex, result.ColAgent, result.ColTaskSuccess, result.ColTaskNum)
	if err != nil {
		return TaskRows{}, err
	}
	x, success, total := cols[0], cols[1], cols[2]
	chart := &render.Chart{
		Title:  title,
		XLabel: "agent number",
		YLabel: "success rate",
		Series: []render.Series{
			{Label: Methods[1].Name, X: x, Y: Ratio(success, total), Glyph: Methods[1].Glyph},
		},
	}
	if _, err := chart.Save(a.PlotsDir, file); err != nil {
		return TaskRows{}, err
	}

	rows, err := selectSorted(grouped, TaskColumns...)
	if err != nil {
		return TaskRows{}, err
	}
	if err := a.dump("", rows); err != nil {
		return TaskRows{}, err
	}

	cols, err = floats(rows, colRatio, result.ColTimeMS)
	if err != nil {
		return TaskRows{}, err
	}
	ratios, times := cols[0], cols[1]
	for i := range times {
		times[i] = render.Seconds(times[i])
	}
	return TaskRows{
		Ratio:   render.TableRow(phiStr, k, render.Cells(ratios, a.Digits)),
		Seconds: render.TableRow(phiStr, k, render.Cells(times, a.Digits)),
		Rows:    rows,
	}, nil
}

// Tasks runs TasksVsSuccess for every task multiplier. The section has
// a success-rate block and a running-time block; nil means nothing
// matched for any k.
func (a *Analyzer) Tasks(f *frame.Frame, grid string, phi frame.Value, ks []int) (*Section, error) {
	sec := &Section{
		Size:   result.MapSize(grid, a.SmallMap),
		Phi:    phi,
		Blocks: make([][]string, 2),
	}
	var frames []*frame.Frame
	for _, k := range ks {
		tr, err := a.TasksVsSuccess(f, grid, phi, k)
		if err != nil {
			return nil, fmt.Errorf("tasks size=%s phi=%s k=%d: %w", grid, phi, k, err)
		}
		if tr.Rows == nil {
			logger.Warn("no runs match", "analysis", "tasks", "size", grid, "phi", phi.String(), "k", k)
			continue
		}
		sec.Blocks[0] = append(sec.Blocks[0], tr.Ratio)
		sec.Blocks[1] = append(sec.Blocks[1], tr.Seconds)
		frames = append(frames, tr.Rows)
	}
	if len(frames) == 0 {
		return nil, nil
	}
	rows, err := frame.Concat(frames...)
	if err != nil {
		return nil, err
	}
	sec.Rows = rows
	return sec, nil
}
