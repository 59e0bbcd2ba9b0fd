package hillchart

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	type test struct {
		in     string
		expect float64
	}

	var tests = []test{
		{"0", 0},
		{"0.0", 0},
		{"0.35", 35},
		{"35", 35},
		{"150", 100},
		{"100", 100},
		{"1", 1},
		{"0.5", 50},
		{"99.9", 99.9},
		{"  42 ", 42},
		{"42%", 42},
		{"-5", 0},
		{"-0.5", 0},
		{"1e400", 100},
		{"+Inf", 100},
		{"-Inf", 0},
	}

	for _, test := range tests {
		if got := Normalize(test.in); math.Abs(got-test.expect) > 1e-9 {
			t.Errorf("Normalize(%q): expected %v, got %v", test.in, test.expect, got)
		}
	}
}

func TestNormalizeMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "NaN", "35 percent", "%"} {
		if v := Normalize(in); IsUsable(v) {
			t.Errorf("Normalize(%q): expected unusable progress, got %v", in, v)
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	for _, in := range []string{"-1000", "-0.0001", "0.0001", "0.999", "1", "57.3", "100.0001", "1e9"} {
		v := Normalize(in)
		if v < 0 || v > 100 {
			t.Errorf("Normalize(%q) = %v, out of range", in, v)
		}
	}
}

// TestNormalizeIdempotent checks that normalizing a formatted normalized value
// gives it back. Values in (0, 0.01) are excluded: they normalize into (0, 1)
// and would be treated as a fraction again.
func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"0", "0.01", "0.35", "0.999", "1", "1.5", "35", "99.99", "100", "250", "-3"} {
		once := Normalize(in)
		twice := Normalize(FormatProgress(once))

		if once != twice {
			t.Errorf("Normalize(%q): %v != %v after second pass", in, once, twice)
		}
	}
}
