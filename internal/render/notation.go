package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StdNotation formats x with sig significant digits in positional
// notation, keeping trailing zeros: 0.8 -> "0.8000", 123456 -> "123500".
// When the last significant digit is a zero in the ones place a point
// marks it as significant: 1000 -> "1000.". Non-finite values render as
// nan, inf and -inf.
func StdNotation(x float64, sig int) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if sig < 1 {
		sig = 1
	}
	if x == 0 {
		if sig == 1 {
			return "0"
		}
		return "0." + strings.Repeat("0", sig-1)
	}
	// Rounding through the exponent form settles carries like 9.9996 -> 10.00.
	e := strconv.FormatFloat(x, 'e', sig-1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err != nil {
		panic(fmt.Sprintf("render: unexpected exponent form %q", e))
	}
	rounded, _ := strconv.ParseFloat(e, 64)
	decimals := sig - 1 - exp
	if decimals < 0 {
		decimals = 0
	}
	out := strconv.FormatFloat(rounded, 'f', decimals, 64)
	if exp == sig-1 && sig > 1 && strings.HasSuffix(out, "0") {
		out += "."
	}
	return out
}

// Seconds converts milliseconds to seconds.
func Seconds(ms float64) float64 {
	return ms / 1000
}
