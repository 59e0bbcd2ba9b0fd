package hillchart

import "math"

// DefaultStep is the default progress step between two sampled curve points.
const DefaultStep = 0.1

// maxCurvePoints caps the number of sampled points. Finer steps are invalid.
const maxCurvePoints = 10_000_000

// HeightAt returns the height of the hill at the given progress. The hill
// starts at 0, peaks at 100 on progress 50 and comes back down to 0 on
// progress 100. It is defined for all inputs, though only [0, 100] is
// meaningful.
func HeightAt(progress float64) float64 {
	return 50*math.Sin((math.Pi/50)*progress-math.Pi/2) + 50
}

// Point is a point in chart space, or in pixel space once scaled.
type Point struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
}

// SampleCurve samples the hill over [0, 100) with the given step. An invalid
// step falls back to DefaultStep.
func SampleCurve(step float64) []Point {
	return NewCurveIterator(step).ReadAll()
}

// CurveIterator is a forward iterator over the sampled hill. It holds no
// shared state, so any number of iterators may run at once.
type CurveIterator struct {
	step float64
	n    int
	i    int
}

// NewCurveIterator creates a new iterator over the hill with the given step.
// An invalid step falls back to DefaultStep.
func NewCurveIterator(step float64) *CurveIterator {
	n := math.Ceil(100 / step)
	if !(step > 0) || math.IsInf(step, 0) || !(n <= maxCurvePoints) {
		step = DefaultStep
		n = math.Ceil(100 / step)
	}

	return &CurveIterator{
		step: step,
		n:    int(n),
	}
}

// Step returns the effective step of the iterator.
func (it *CurveIterator) Step() float64 { return it.step }

// Len returns the total number of points the iterator yields.
func (it *CurveIterator) Len() int { return it.n }

// Next reads the next point into pt. If pt is nil, then the iterator is still
// advanced. False is returned once the iterator is exhausted.
func (it *CurveIterator) Next(pt *Point) bool {
	if it.i >= it.n {
		return false
	}

	if pt != nil {
		x := float64(it.i) * it.step
		pt.X = x
		pt.Y = HeightAt(x)
	}

	it.i++
	return true
}

// Remaining returns the number of points left to read.
func (it *CurveIterator) Remaining() int {
	return it.n - it.i
}

// ReadRemaining reads all points from the current position to the end.
func (it *CurveIterator) ReadRemaining() []Point {
	points := make([]Point, it.Remaining())
	for i := range points {
		it.Next(&points[i])
	}
	return points
}

// Rewind resets the iterator back to progress 0.
func (it *CurveIterator) Rewind() {
	it.i = 0
}

// ReadAll is similar to ReadRemaining, except the iterator is rewound first.
func (it *CurveIterator) ReadAll() []Point {
	it.Rewind()
	return it.ReadRemaining()
}
