package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadCSV parses a header row plus data rows. Each column's kind is
// inferred from all of its cells: Bool when every cell reads true/false,
// Int when every cell is an integer, Float when every cell is a number
// or empty (empty becomes NaN), String otherwise.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	cols := make([]*Column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cells := make([]string, len(records))
		for r, rec := range records {
			cells[r] = strings.TrimSpace(rec[i])
		}
		cols[i] = inferColumn(name, cells)
	}
	return New(cols...)
}

func inferColumn(name string, cells []string) *Column {
	isBool, isInt, isFloat := len(cells) > 0, len(cells) > 0, true
	for _, s := range cells {
		if s == "" {
			isBool, isInt = false, false
			continue
		}
		if _, ok := parseBool(s); !ok {
			isBool = false
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			isFloat = false
		}
		if !isBool && !isInt && !isFloat {
			break
		}
	}
	c := &Column{Name: name}
	switch {
	case isBool:
		c.Kind = Bool
		c.nums = make([]float64, len(cells))
		for i, s := range cells {
			if b, _ := parseBool(s); b {
				c.nums[i] = 1
			}
		}
	case isInt || isFloat:
		c.Kind = Float
		if isInt {
			c.Kind = Int
		}
		c.nums = make([]float64, len(cells))
		for i, s := range cells {
			if s == "" {
				c.nums[i] = math.NaN()
				continue
			}
			c.nums[i], _ = strconv.ParseFloat(s, 64)
		}
	default:
		c.Kind = String
		c.strs = cells
	}
	return c
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// WriteCSV writes a header row and every row. Float cells use a fixed
// number of decimals; missing cells are left empty.
func (f *Frame) WriteCSV(w io.Writer, floatDigits int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return err
	}
	rec := make([]string, len(f.cols))
	for r := 0; r < f.rows; r++ {
		for i, c := range f.cols {
			rec[i] = formatCell(c.Value(r), floatDigits)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v Value, floatDigits int) string {
	if v.Kind == String {
		return v.Str
	}
	if math.IsNaN(v.Num) {
		return ""
	}
	switch v.Kind {
	case Float:
		if math.IsInf(v.Num, 0) {
			return FormatFloat(v.Num)
		}
		return strconv.FormatFloat(v.Num, 'f', floatDigits, 64)
	default:
		return v.String()
	}
}
