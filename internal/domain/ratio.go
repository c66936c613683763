package domain

import (
	"math"
	"strconv"
	"strings"
)

// RatioTolerance is the allowed deviation when matching aspect ratios.
const RatioTolerance = 0.05

// ParseRatio parses a "W:H" string into a positive ratio.
// ok is false for any other shape, which callers treat as "no ratio filter".
func ParseRatio(s string) (ratio float64, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || h == 0 {
		return 0, false
	}

	ratio = w / h
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0, false
	}
	return ratio, true
}

// MatchesRatio reports whether the record has known dimensions and its ratio
// lies within RatioTolerance of want.
func (r LinkRecord) MatchesRatio(want float64) bool {
	return r.HasDimensions() && math.Abs(r.Ratio-want) <= RatioTolerance
}
