package hillchart

// Linear is a linear mapping from a domain interval onto a range interval.
// The range may be inverted, which is how the vertical axis maps chart height
// onto pixels growing downwards.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear creates a new linear scale.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{Domain: domain, Range: rng}
}

// Scale maps v from the domain onto the range. Values outside the domain are
// extrapolated. A collapsed domain maps everything onto the middle of the
// range.
func (l Linear) Scale(v float64) float64 {
	span := l.Domain[1] - l.Domain[0]
	if span == 0 {
		return (l.Range[0] + l.Range[1]) / 2
	}

	t := (v - l.Domain[0]) / span
	return l.Range[0] + t*(l.Range[1]-l.Range[0])
}

// ScalePoint maps a point through the x and y scales.
func ScalePoint(x, y Linear, pt Point) Point {
	return Point{X: x.Scale(pt.X), Y: y.Scale(pt.Y)}
}
