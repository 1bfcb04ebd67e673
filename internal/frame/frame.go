// Package frame is a small immutable columnar table: named, typed
// columns with filtering, grouping and key-aligned joins. Every
// operation returns a new Frame and never touches its receiver.
package frame

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrDuplicateKey  = errors.New("duplicate composite key")
)

// Column is a named, typed vector of cells.
type Column struct {
	Name string
	Kind Kind
	nums []float64
	strs []string
}

func NewFloat(name string, vals []float64) *Column {
	return &Column{Name: name, Kind: Float, nums: slices.Clone(vals)}
}

func NewInt(name string, vals []int64) *Column {
	nums := make([]float64, len(vals))
	for i, v := range vals {
		nums[i] = float64(v)
	}
	return &Column{Name: name, Kind: Int, nums: nums}
}

func NewBool(name string, vals []bool) *Column {
	nums := make([]float64, len(vals))
	for i, v := range vals {
		if v {
			nums[i] = 1
		}
	}
	return &Column{Name: name, Kind: Bool, nums: nums}
}

func NewString(name string, vals []string) *Column {
	return &Column{Name: name, Kind: String, strs: slices.Clone(vals)}
}

func (c *Column) Len() int {
	if c.Kind == String {
		return len(c.strs)
	}
	return len(c.nums)
}

func (c *Column) Value(i int) Value {
	if c.Kind == String {
		return Value{Kind: String, Str: c.strs[i]}
	}
	return Value{Kind: c.Kind, Num: c.nums[i]}
}

func (c *Column) take(rows []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == String {
		out.strs = make([]string, len(rows))
		for i, r := range rows {
			out.strs[i] = c.strs[r]
		}
		return out
	}
	out.nums = make([]float64, len(rows))
	for i, r := range rows {
		out.nums[i] = c.nums[r]
	}
	return out
}

func (c *Column) renamed(name string) *Column {
	return &Column{Name: name, Kind: c.Kind, nums: c.nums, strs: c.strs}
}

// Frame is an immutable table. Columns are shared between frames only
// when neither side can write to them.
type Frame struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a frame from columns of equal length with unique names.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("column %q appears twice", c.Name)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), f.rows)
		}
		f.index[c.Name] = i
		f.cols = append(f.cols, c)
	}
	return f, nil
}

func (f *Frame) Len() int {
	return f.rows
}

func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) Column(name string) (*Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return f.cols[i], nil
}

// Floats returns a copy of a numeric column.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind == String {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return slices.Clone(c.nums), nil
}

func (f *Frame) Value(name string, row int) (Value, error) {
	c, err := f.Column(name)
	if err != nil {
		return Value{}, err
	}
	return c.Value(row), nil
}

// Take returns the given rows in the given order.
func (f *Frame) Take(rows []int) *Frame {
	out := &Frame{index: f.index, rows: len(rows), cols: make([]*Column, len(f.cols))}
	for i, c := range f.cols {
		out.cols[i] = c.take(rows)
	}
	return out
}

// Select keeps the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Column, 0, len(names))
	for _, n := range names {
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// WithColumn returns a frame with c appended, or replacing the column of
// the same name.
func (f *Frame) WithColumn(c *Column) (*Frame, error) {
	cols := slices.Clone(f.cols)
	if i, ok := f.index[c.Name]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	return New(cols...)
}

// Div adds out = num / den. Zero denominators are not guarded: they
// yield NaN or ±Inf.
func (f *Frame) Div(num, den, out string) (*Frame, error) {
	n, err := f.Floats(num)
	if err != nil {
		return nil, err
	}
	d, err := f.Floats(den)
	if err != nil {
		return nil, err
	}
	q := make([]float64, len(n))
	for i := range n {
		q[i] = n[i] / d[i]
	}
	return f.WithColumn(NewFloat(out, q))
}

// Scale adds out = col * factor.
func (f *Frame) Scale(col string, factor float64, out string) (*Frame, error) {
	v, err := f.Floats(col)
	if err != nil {
		return nil, err
	}
	for i := range v {
		v[i] *= factor
	}
	return f.WithColumn(NewFloat(out, v))
}

// Sort orders rows by the given keys, ascending and stable.
func (f *Frame) Sort(keys ...string) (*Frame, error) {
	cols, err := f.columns(keys)
	if err != nil {
		return nil, err
	}
	rows := make([]int, f.rows)
	for i := range rows {
		rows[i] = i
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		for _, c := range cols {
			if r := Compare(c.Value(a), c.Value(b)); r != 0 {
				return r
			}
		}
		return 0
	})
	return f.Take(rows), nil
}

// Unique returns the distinct values of a column in order of first
// appearance.
func (f *Frame) Unique(name string) ([]Value, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []Value
	for i := 0; i < f.rows; i++ {
		v := c.Value(i)
		k := keyOf([]Value{v})
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Concat stacks frames that share the same column names and kinds.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, errors.New("nothing to concatenate")
	}
	first := frames[0]
	cols := make([]*Column, len(first.cols))
	for i, c := range first.cols {
		cols[i] = &Column{Name: c.Name, Kind: c.Kind}
	}
	for fi, f := range frames {
		if len(f.cols) != len(cols) {
			return nil, fmt.Errorf("frame %d has %d columns, want %d", fi, len(f.cols), len(cols))
		}
		for i, c := range f.cols {
			dst := cols[i]
			if c.Name != dst.Name || c.Kind != dst.Kind {
				return nil, fmt.Errorf("frame %d column %d is %s %q, want %s %q", fi, i, c.Kind, c.Name, dst.Kind, dst.Name)
			}
			dst.nums = append(dst.nums, c.nums...)
			dst.strs = append(dst.strs, c.strs...)
		}
	}
	return New(cols...)
}

func (f *Frame) columns(names []string) ([]*Column, error) {
	cols := make([]*Column, len(names))
	for i, n := range names {
		c, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

func rowKey(cols []*Column, row int) []Value {
	vals := make([]Value, len(cols))
	for i, c := range cols {
		vals[i] = c.Value(row)
	}
	return vals
}

func hasNaN(vals []Value) bool {
	for _, v := range vals {
		if v.Kind.Numeric() && math.IsNaN(v.Num) {
			return true
		}
	}
	return false
}
