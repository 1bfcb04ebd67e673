package frame

import (
	"fmt"
	"math"
)

type op uint8

const (
	opEq op = iota
	opGe
)

// Predicate is a single column constraint. Predicates passed to Filter
// are combined with AND.
type Predicate struct {
	Column string
	op     op
	value  any
}

// Eq matches cells equal to v. v may be a bool, int, int64, float64,
// string or Value. Booleans compare as 1/0 against numeric columns.
func Eq(column string, v any) Predicate {
	return Predicate{Column: column, op: opEq, value: v}
}

// Ge matches numeric cells greater than or equal to v.
func Ge(column string, v any) Predicate {
	return Predicate{Column: column, op: opGe, value: v}
}

func (p Predicate) String() string {
	sym := "=="
	if p.op == opGe {
		sym = ">="
	}
	return fmt.Sprintf("%s %s %v", p.Column, sym, p.value)
}

func (p Predicate) compile(f *Frame) (func(row int) bool, error) {
	c, err := f.Column(p.Column)
	if err != nil {
		return nil, err
	}
	v, ok := valueOf(p.value)
	if !ok {
		return nil, fmt.Errorf("predicate %s: unsupported value type %T", p, p.value)
	}
	if f.rows == 0 {
		// kinds of an empty table are guesses
		return func(int) bool { return false }, nil
	}
	if c.Kind == String {
		if v.Kind != String || p.op != opEq {
			return nil, fmt.Errorf("predicate %s: column %q holds strings", p, c.Name)
		}
		return func(row int) bool { return c.strs[row] == v.Str }, nil
	}
	if v.Kind == String {
		return nil, fmt.Errorf("predicate %s: column %q is %s", p, c.Name, c.Kind)
	}
	if p.op == opGe {
		return func(row int) bool { return c.nums[row] >= v.Num }, nil
	}
	if math.IsNaN(v.Num) {
		return func(int) bool { return false }, nil
	}
	return func(row int) bool { return c.nums[row] == v.Num }, nil
}

// Filter returns the rows satisfying every predicate. An empty result is
// a valid frame with the same columns.
func (f *Frame) Filter(preds ...Predicate) (*Frame, error) {
	matchers := make([]func(int) bool, len(preds))
	for i, p := range preds {
		m, err := p.compile(f)
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}
	var rows []int
	for r := 0; r < f.rows; r++ {
		keep := true
		for _, m := range matchers {
			if !m(r) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, r)
		}
	}
	return f.Take(rows), nil
}
