package frame

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Kind is the storage type of a column.
type Kind uint8

const (
	String Kind = iota
	Int
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "string"
	}
}

// Numeric reports whether values of this kind are stored as float64.
func (k Kind) Numeric() bool {
	return k != String
}

// Value is a single cell. Numeric kinds (Int, Float, Bool) keep their
// value in Num; Bool uses 1 and 0. A NaN Num marks a missing value.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Float returns the numeric value, or NaN for strings.
func (v Value) Float() float64 {
	if v.Kind == String {
		return math.NaN()
	}
	return v.Num
}

// Truthy reports whether a numeric value is non-zero.
func (v Value) Truthy() bool {
	return v.Kind.Numeric() && v.Num != 0 && !math.IsNaN(v.Num)
}

// String renders the value the way it reads in the source table:
// integers without a fraction, floats in shortest form with at least one
// decimal ("1.0", "-0.5"), booleans as True/False.
func (v Value) String() string {
	switch v.Kind {
	case String:
		return v.Str
	case Bool:
		if math.IsNaN(v.Num) {
			return "nan"
		}
		if v.Num != 0 {
			return "True"
		}
		return "False"
	case Int:
		if math.IsNaN(v.Num) {
			return "nan"
		}
		return strconv.FormatInt(int64(v.Num), 10)
	default:
		return FormatFloat(v.Num)
	}
}

// FormatFloat renders x in shortest round-trip form, always carrying a
// decimal point or an exponent so it reads as a float.
func FormatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Compare orders values: numbers numerically (NaN first), strings
// lexically, numbers before strings.
func Compare(a, b Value) int {
	as, bs := a.Kind == String, b.Kind == String
	switch {
	case as && bs:
		return strings.Compare(a.Str, b.Str)
	case as:
		return 1
	case bs:
		return -1
	}
	return cmp.Compare(a.Num, b.Num)
}

func valueOf(v any) (Value, bool) {
	switch x := v.(type) {
	case Value:
		return x, true
	case bool:
		if x {
			return Value{Kind: Bool, Num: 1}, true
		}
		return Value{Kind: Bool, Num: 0}, true
	case int:
		return Value{Kind: Int, Num: float64(x)}, true
	case int64:
		return Value{Kind: Int, Num: float64(x)}, true
	case float64:
		return Value{Kind: Float, Num: x}, true
	case string:
		return Value{Kind: String, Str: x}, true
	}
	return Value{}, false
}

// keyOf encodes values into a comparable map key.
func keyOf(vals []Value) string {
	var b strings.Builder
	for _, v := range vals {
		if v.Kind == String {
			b.WriteByte('s')
			b.WriteString(strconv.Quote(v.Str))
		} else {
			n := v.Num
			if n == 0 {
				n = 0 // fold -0 into +0
			}
			b.WriteByte('n')
			b.WriteString(strconv.FormatUint(math.Float64bits(n), 16))
		}
		b.WriteByte('|')
	}
	return b.String()
}

func formatKey(names []string, vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = names[i] + "=" + v.String()
	}
	return strings.Join(parts, ",")
}
