package analysis

import (
	"fmt"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/signalnine/flexreport/internal/result"
)

const colSuccessRate = "success_rate"

func fullSearch() []frame.Predicate {
	return []frame.Predicate{
		completed(),
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel),
		off(result.ColReserveAll),
	}
}

// PhiOverview charts the mean success rate against phi for every
// scheduler method, one chart per map size.
func (a *Analyzer) PhiOverview(f *frame.Frame) error {
	withRate, err := SuccessRate(f, colSuccessRate)
	if err != nil {
		return err
	}
	base, err := withRate.Filter(fullSearch()...)
	if err != nil {
		return err
	}
	grids, err := base.Groups(result.ColSize)
	if err != nil {
		return err
	}
	for _, g := range grids {
		sel := base.Take(g.Rows)
		size := result.MapSize(g.Key[0].Str, a.SmallMap)
		file := fmt.Sprintf("SR-%s.png", size)
		title := fmt.Sprintf("Success Rate: %s Map", size)
		logger.Info(title, "chart", file)

		chart := &render.Chart{Title: title, XLabel: "phi", YLabel: "success rate"}
		for _, m := range Methods {
			rows, err := m.Select(sel)
			if err != nil {
				return err
			}
			means, err := rows.GroupMean(result.ColPhi)
			if err != nil {
				return err
			}
			if err := a.dump(m.Name, means); err != nil {
				return err
			}
			cols, err := floats(means, result.ColPhi, colSuccessRate)
			if err != nil {
				return err
			}
			chart.Series = append(chart.Series, render.Series{Label: m.Name, X: cols[0], Y: cols[1], Glyph: m.Glyph})
		}
		if _, err := chart.Save(a.PlotsDir, file); err != nil {
			return err
		}
	}
	return nil
}

// PhiPerConfig charts success rate against phi for each (map size,
// agent, task_per_agent) configuration, one point per run.
func (a *Analyzer) PhiPerConfig(f *frame.Frame) error {
	base, err := f.Filter(fullSearch()...)
	if err != nil {
		return err
	}
	configs, err := base.Groups(result.ColSize, result.ColAgent, result.ColTaskPerAgent)
	if err != nil {
		return err
	}
	for _, g := range configs {
		sel := base.Take(g.Rows)
		size := result.MapSize(g.Key[0].Str, a.SmallMap)
		agents, tpa := g.Key[1], g.Key[2]
		file := fmt.Sprintf("SR-%s-M-%s-N-%s.png", size, agents, tpa)
		title := fmt.Sprintf("Success Rate: %s Map, M=%s, N=%s", size, agents, tpa)
		logger.Info(title, "chart", file)

		chart := &render.Chart{Title: title, XLabel: "phi", YLabel: "success rate"}
		for _, m := range Methods {
			rows, err := m.Select(sel)
			if err != nil {
				return err
			}
			cols, err := floats(rows, result.ColPhi, result.ColTaskSuccess, result.ColTaskNum)
			if err != nil {
				return err
			}
			chart.Series = append(chart.Series, render.Series{Label: m.Name, X: cols[0], Y: Ratio(cols[1], cols[2]), Glyph: m.Glyph})
		}
		if _, err := chart.Save(a.PlotsDir, file); err != nil {
			return err
		}
	}
	return nil
}

// Average prints the mean outcome per (phi, scheduler) for the full
// search configuration with the given reservation mode.
func (a *Analyzer) Average(f *frame.Frame, reserveAll bool, label string) (*frame.Frame, error) {
	sel, err := f.Filter(
		completed(),
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel),
		frame.Eq(result.ColWindow, 0), frame.Eq(result.ColReserveAll, reserveAll),
		on(result.ColSkip), on(result.ColTaskBound),
	)
	if err != nil {
		return nil, err
	}
	g, err := sel.GroupMean(result.ColPhi, result.ColScheduler)
	if err != nil {
		return nil, err
	}
	return g, a.dump("Average-"+label, g)
}
