package gpa

import (
	"math"
	"strconv"
	"strings"
)

// ParseNonNegative reads a numeric form value. Anything that is not a finite
// number >= 0 becomes 0.
func ParseNonNegative(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return clamp(v)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
