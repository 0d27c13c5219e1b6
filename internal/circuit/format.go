package circuit

import (
	"math"
	"strconv"
)

// Round2 rounds x to two decimal places, half away from zero.
// Infinities and NaN pass through unchanged.
func Round2(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return math.Round(x*100) / 100
}

// FormatValue renders x the way every display surface shows it: rounded to
// two decimals with trailing zeros trimmed, and "∞" for infinity.
func FormatValue(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	case math.IsNaN(x):
		return "NaN"
	}
	r := Round2(x)
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
