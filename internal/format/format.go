// Package format converts game numbers into display strings.
package format

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Band boundaries.
const (
	groupedFrom    = 1_000
	scientificFrom = 1e12
)

// Number renders n using three magnitude bands:
//
//	n < 1,000            integers as-is, other values with two fraction digits
//	1,000 <= n < 1e12    comma-grouped integer, fraction truncated
//	n >= 1e12            scientific notation with 6 fraction digits
func Number(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "+Inf"
	case math.IsInf(n, -1):
		return "-Inf"
	case n == 0:
		return "0" // Also catches -0
	case n < 0:
		return "-" + Number(-n)
	case n < groupedFrom:
		if n == math.Trunc(n) {
			return strconv.FormatFloat(n, 'f', 0, 64)
		}
		// Values that round up to 1,000 belong to the grouped band
		if r := math.Round(n*100) / 100; r >= groupedFrom {
			return humanize.Comma(int64(r))
		}
		return strconv.FormatFloat(n, 'f', 2, 64)
	case n < scientificFrom:
		return humanize.Comma(int64(n))
	default:
		return strconv.FormatFloat(n, 'e', 6, 64)
	}
}

// Rate renders a per-second rate.
func Rate(n float64) string {
	return Number(n) + "/s"
}
