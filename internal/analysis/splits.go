package analysis

import (
	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/result"
)

// Names of the analyses that join paired configurations.
const (
	NameBranchBound = "branch-bound"
	NameDummyPath   = "dummy-path"
	NameRecalc      = "recalc"
)

// Split is one side of a paired comparison: the rows an analysis joins
// on (agent, task_per_agent, seed). Keys must be unique inside it.
type Split struct {
	Analysis string
	Side     string
	Preds    []frame.Predicate
}

func branchBoundScope(grid string, phi frame.Value) []frame.Predicate {
	return join(at(grid, phi), flexBaseline(), []frame.Predicate{
		on(result.ColMLabel), off(result.ColReserveAll),
		on(result.ColRecalc), on(result.ColRetry),
	})
}

var (
	bbSorted    = []frame.Predicate{on(result.ColBound), on(result.ColSort)}
	bbBoundOnly = []frame.Predicate{on(result.ColBound), off(result.ColSort)}
	bbNone      = []frame.Predicate{off(result.ColBound), off(result.ColSort)}
)

func dummyPathScope(grid string, phi frame.Value) []frame.Predicate {
	return join(at(grid, phi), flexBaseline(), []frame.Predicate{
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel), on(result.ColRecalc),
		on(result.ColSkip), on(result.ColTaskBound), on(result.ColRetry),
		off(result.ColNearest), off(result.ColEC),
	})
}

func recalcScope(grid string, phi frame.Value) []frame.Predicate {
	return join(at(grid, phi), flexBaseline(), []frame.Predicate{
		on(result.ColBound), on(result.ColSort), on(result.ColMLabel), off(result.ColReserveAll),
		on(result.ColSkip), on(result.ColTaskBound), off(result.ColNearest), on(result.ColRecalc),
	})
}

// PairedSplits lists every split the paired analyses join for one
// (grid, phi) pair.
func PairedSplits(grid string, phi frame.Value) []Split {
	bb := branchBoundScope(grid, phi)
	dp := dummyPathScope(grid, phi)
	rc := recalcScope(grid, phi)
	return []Split{
		{Analysis: NameBranchBound, Side: "bound+sort", Preds: join(bb, bbSorted)},
		{Analysis: NameBranchBound, Side: "bound only", Preds: join(bb, bbBoundOnly)},
		{Analysis: NameBranchBound, Side: "no bound", Preds: join(bb, bbNone)},
		{Analysis: NameDummyPath, Side: "dynamic", Preds: join(dp, []frame.Predicate{off(result.ColReserveAll)})},
		{Analysis: NameDummyPath, Side: "reserve all", Preds: join(dp, []frame.Predicate{on(result.ColReserveAll)})},
		{Analysis: NameRecalc, Side: "ec on", Preds: join(rc, []frame.Predicate{on(result.ColEC)})},
		{Analysis: NameRecalc, Side: "ec off", Preds: join(rc, []frame.Predicate{off(result.ColEC)})},
	}
}
