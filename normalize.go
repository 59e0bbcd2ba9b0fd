package hillchart

import (
	"math"
	"strconv"
	"strings"
)

// Normalize converts a raw progress cell into a progress value within
// [0, 100]. Values in (0, 1) are treated as fractions, so both "0.35" and
// "35" become 35. Exactly 1 is not a fraction.
//
// Normalize never fails: text that cannot be parsed returns NaN, which
// callers must treat as "no usable progress".
func Normalize(raw string) float64 {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "%")

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}

	// NaN compares false against everything and falls through untouched.
	switch {
	case v > 100:
		return 100
	case v == 0:
		return 0
	case v < 0:
		return 0
	case v < 1:
		return v * 100
	default:
		return v
	}
}

// isRangeErr returns true if strconv rejected the number only for being out of
// float64 range. ParseFloat still returns ±Inf or ±0 in that case.
func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// IsUsable returns true if the normalized progress can be plotted.
func IsUsable(progress float64) bool {
	return !math.IsNaN(progress)
}

// FormatProgress formats a progress value in its shortest form, such that
// Normalize(FormatProgress(v)) gives v back for v outside (0, 1).
func FormatProgress(progress float64) string {
	return strconv.FormatFloat(progress, 'g', -1, 64)
}
