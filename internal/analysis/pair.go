package analysis

import (
	"fmt"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/result"
)

// Join aligns the right configuration onto the left one trial by trial,
// keyed by (agent, task_per_agent, seed). Trials only run on the right
// side are dropped.
func Join(left, right *frame.Frame, lsuffix, rsuffix string) (*frame.Frame, error) {
	j, err := frame.LeftJoin(left, right, result.PairKey, lsuffix, rsuffix)
	if err != nil {
		return nil, fmt.Errorf("pairing %s with %s: %w", lsuffix, rsuffix, err)
	}
	return j, nil
}

// Pair splits f on a boolean control column and joins the rows with the
// feature on against the rows with it off.
func Pair(f *frame.Frame, control, onSuffix, offSuffix string) (*frame.Frame, error) {
	enabled, err := f.Filter(on(control))
	if err != nil {
		return nil, err
	}
	disabled, err := f.Filter(off(control))
	if err != nil {
		return nil, err
	}
	return Join(enabled, disabled, onSuffix, offSuffix)
}

// Ratio divides element-wise. Zero denominators give NaN or ±Inf.
func Ratio(num, den []float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		out[i] = num[i] / den[i]
	}
	return out
}

// SuccessRate adds ratio = task_success / task_num.
func SuccessRate(f *frame.Frame, out string) (*frame.Frame, error) {
	return f.Div(result.ColTaskSuccess, result.ColTaskNum, out)
}
