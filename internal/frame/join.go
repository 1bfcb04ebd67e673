package frame

import (
	"fmt"
	"math"
)

// LeftJoin aligns right onto left by the composite key. The key columns
// come first, then the remaining left columns, then the remaining right
// columns. Non-key names present on both sides get lsuffix and rsuffix.
// Left rows with no partner carry NaN (numeric) or "" (string) on the
// right side; rows only present on the right are dropped.
//
// The key must be unique within each side. A repeated key fails with
// ErrDuplicateKey rather than fanning out rows.
func LeftJoin(left, right *Frame, keys []string, lsuffix, rsuffix string) (*Frame, error) {
	lkeys, err := left.columns(keys)
	if err != nil {
		return nil, fmt.Errorf("left side: %w", err)
	}
	rkeys, err := right.columns(keys)
	if err != nil {
		return nil, fmt.Errorf("right side: %w", err)
	}
	if err := checkUnique(left, lkeys, keys, "left"); err != nil {
		return nil, err
	}
	rindex := make(map[string]int, right.rows)
	for r := 0; r < right.rows; r++ {
		k := rowKey(rkeys, r)
		enc := keyOf(k)
		if _, dup := rindex[enc]; dup {
			return nil, fmt.Errorf("right side: %w: %s", ErrDuplicateKey, formatKey(keys, k))
		}
		rindex[enc] = r
	}

	match := make([]int, left.rows)
	for r := 0; r < left.rows; r++ {
		if rr, ok := rindex[keyOf(rowKey(lkeys, r))]; ok {
			match[r] = rr
		} else {
			match[r] = -1
		}
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}
	overlap := func(name string, other *Frame) bool {
		return !isKey[name] && other.Has(name)
	}

	cols := make([]*Column, 0, len(left.cols)+len(right.cols))
	cols = append(cols, lkeys...)
	for _, c := range left.cols {
		if isKey[c.Name] {
			continue
		}
		if overlap(c.Name, right) {
			c = c.renamed(c.Name + lsuffix)
		}
		cols = append(cols, c)
	}
	for _, c := range right.cols {
		if isKey[c.Name] {
			continue
		}
		name := c.Name
		if overlap(name, left) {
			name += rsuffix
		}
		cols = append(cols, c.gather(name, match))
	}
	return New(cols...)
}

// gather picks rows by index; -1 yields a missing cell.
func (c *Column) gather(name string, rows []int) *Column {
	out := &Column{Name: name, Kind: c.Kind}
	if c.Kind == String {
		out.strs = make([]string, len(rows))
		for i, r := range rows {
			if r >= 0 {
				out.strs[i] = c.strs[r]
			}
		}
		return out
	}
	out.nums = make([]float64, len(rows))
	for i, r := range rows {
		if r >= 0 {
			out.nums[i] = c.nums[r]
		} else {
			out.nums[i] = math.NaN()
		}
	}
	return out
}

// DuplicateKeys lists every composite key that occurs more than once.
func (f *Frame) DuplicateKeys(keys ...string) ([][]Value, error) {
	cols, err := f.columns(keys)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, f.rows)
	var dups [][]Value
	for r := 0; r < f.rows; r++ {
		k := rowKey(cols, r)
		enc := keyOf(k)
		counts[enc]++
		if counts[enc] == 2 {
			dups = append(dups, k)
		}
	}
	return dups, nil
}

func checkUnique(f *Frame, cols []*Column, names []string, side string) error {
	seen := make(map[string]struct{}, f.rows)
	for r := 0; r < f.rows; r++ {
		k := rowKey(cols, r)
		enc := keyOf(k)
		if _, dup := seen[enc]; dup {
			return fmt.Errorf("%s side: %w: %s", side, ErrDuplicateKey, formatKey(names, k))
		}
		seen[enc] = struct{}{}
	}
	return nil
}
