package curves

import (
	"github.com/osucad/diffcalc/framework/math/vector"
)

// Polyline is a path made of straight segments between control points.
type Polyline struct {
	points     []vector.Vector2f
	cumulative []float32
}

func NewPolyline(points ...vector.Vector2f) *Polyline {
	line := &Polyline{
		points:     points,
		cumulative: make([]float32, len(points)),
	}

	for i := 1; i < len(points); i++ {
		line.cumulative[i] = line.cumulative[i-1] + points[i].Dst(points[i-1])
	}

	return line
}

// Length returns the geometric length of all segments.
func (line *Polyline) Length() float32 {
	if len(line.cumulative) == 0 {
		return 0
	}

	return line.cumulative[len(line.cumulative)-1]
}

// PositionAtDistance returns the point lying d units along the path.
// Distances past the end extend the last segment.
func (line *Polyline) PositionAtDistance(d float64) vector.Vector2f {
	switch len(line.points) {
	case 0:
		return vector.Vector2f{}
	case 1:
		return line.points[0]
	}

	dist := float32(d)
	if dist <= 0 {
		return line.points[0]
	}

	// Last segment is used for extrapolation
	segment := len(line.points) - 1

	for i := 1; i < len(line.points); i++ {
		if dist <= line.cumulative[i] {
			segment = i
			break
		}
	}

	start, end := line.points[segment-1], line.points[segment]

	segmentLength := line.cumulative[segment] - line.cumulative[segment-1]
	if segmentLength == 0 {
		return end
	}

	return start.Lerp(end, (dist-line.cumulative[segment-1])/segmentLength)
}
