package result

// Run Record columns. One row of the results table is one simulation
// trial; rows are never modified after Load.
const (
	ColSize         = "size"
	ColAgent        = "agent"
	ColTaskPerAgent = "task_per_agent"
	ColSeed         = "seed"
	ColScheduler    = "scheduler"
	ColWindow       = "window"
	ColPhi          = "phi"

	ColBound      = "bound"
	ColSort       = "sort"
	ColMLabel     = "mlabel"
	ColReserveAll = "reserve_all"
	ColSkip       = "skip"
	ColTaskBound  = "task_bound"
	ColRecalc     = "recalc"
	ColNearest    = "nearest"
	ColEC         = "ec"
	ColRetry      = "retry"

	ColTaskNum     = "task_num"
	ColTaskSuccess = "task_success"
	ColTimeMS      = "time_ms"
	ColReserve     = "reserve"
)

// Scheduler variants.
const (
	SchedulerEDF  = "edf"
	SchedulerFlex = "flex"
)

// Required lists the columns every results file must carry. ColReserve
// is optional.
var Required = []string{
	ColSize, ColAgent, ColTaskPerAgent, ColSeed, ColScheduler, ColWindow, ColPhi,
	ColBound, ColSort, ColMLabel, ColReserveAll, ColSkip, ColTaskBound,
	ColRecalc, ColNearest, ColEC, ColRetry,
	ColTaskNum, ColTaskSuccess, ColTimeMS,
}

// PairKey identifies a trial across paired configurations.
var PairKey = []string{ColAgent, ColTaskPerAgent, ColSeed}

// Map size letters.
const (
	SizeSmall = "S"
	SizeLarge = "L"
)

// Sizes is the order map sizes are reported in.
var Sizes = []string{SizeSmall, SizeLarge}

// MapSize maps a grid dimension string to its size letter. Everything
// that is not the small grid counts as large.
func MapSize(grid, smallGrid string) string {
	if grid == smallGrid {
		return SizeSmall
	}
	return SizeLarge
}
