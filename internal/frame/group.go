package frame

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Group is one distinct key combination and the rows that carry it.
type Group struct {
	Key  []Value
	Rows []int
}

// Groups partitions rows by the key columns. Groups come back in
// ascending key order; rows inside a group keep their original order.
// Rows with a NaN key cell belong to no group.
func (f *Frame) Groups(keys ...string) ([]Group, error) {
	cols, err := f.columns(keys)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]int)
	var groups []Group
	for r := 0; r < f.rows; r++ {
		key := rowKey(cols, r)
		if hasNaN(key) {
			continue
		}
		k := keyOf(key)
		gi, ok := byKey[k]
		if !ok {
			gi = len(groups)
			byKey[k] = gi
			groups = append(groups, Group{Key: key})
		}
		groups[gi].Rows = append(groups[gi].Rows, r)
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		for i := range a.Key {
			if c := Compare(a.Key[i], b.Key[i]); c != 0 {
				return c
			}
		}
		return 0
	})
	return groups, nil
}

// GroupMean collapses each group to one row. Key columns come first and
// keep their kind; every other numeric column becomes the arithmetic
// mean of the group as a Float column. Non-key string columns are
// dropped. NaN cells are not skipped: a NaN anywhere in a group makes
// that group's mean NaN.
func (f *Frame) GroupMean(keys ...string) (*Frame, error) {
	groups, err := f.Groups(keys...)
	if err != nil {
		return nil, err
	}
	isKey := make(map[string]bool, len(keys))
	cols := make([]*Column, 0, len(f.cols))
	for i, name := range keys {
		isKey[name] = true
		src, _ := f.Column(name)
		c := &Column{Name: name, Kind: src.Kind}
		for _, g := range groups {
			v := g.Key[i]
			if c.Kind == String {
				c.strs = append(c.strs, v.Str)
			} else {
				c.nums = append(c.nums, v.Num)
			}
		}
		cols = append(cols, c)
	}
	for _, src := range f.cols {
		if isKey[src.Name] || src.Kind == String {
			continue
		}
		means := make([]float64, len(groups))
		buf := make([]float64, 0, f.rows)
		for gi, g := range groups {
			buf = buf[:0]
			for _, r := range g.Rows {
				buf = append(buf, src.nums[r])
			}
			means[gi] = stat.Mean(buf, nil)
		}
		cols = append(cols, &Column{Name: src.Name, Kind: Float, nums: means})
	}
	return New(cols...)
}
