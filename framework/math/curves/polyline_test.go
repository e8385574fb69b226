package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osucad/diffcalc/framework/math/vector"
)

func TestPolyline_PositionAtDistance(t *testing.T) {
	line := NewPolyline(
		vector.NewVec2f(0, 0),
		vector.NewVec2f(100, 0),
		vector.NewVec2f(100, 50),
	)

	assert.InDelta(t, 150, line.Length(), 1e-4)

	tests := []struct {
		distance float64
		expected vector.Vector2f
	}{
		{-10, vector.NewVec2f(0, 0)},
		{0, vector.NewVec2f(0, 0)},
		{50, vector.NewVec2f(50, 0)},
		{100, vector.NewVec2f(100, 0)},
		{125, vector.NewVec2f(100, 25)},
		{200, vector.NewVec2f(100, 100)},
	}

	for _, test := range tests {
		pos := line.PositionAtDistance(test.distance)
		assert.InDelta(t, test.expected.X, pos.X, 1e-3, "distance %v", test.distance)
		assert.InDelta(t, test.expected.Y, pos.Y, 1e-3, "distance %v", test.distance)
	}
}

func TestPolyline_Degenerate(t *testing.T) {
	assert.Equal(t, vector.Vector2f{}, NewPolyline().PositionAtDistance(10))
	assert.Equal(t, vector.NewVec2f(3, 4), NewPolyline(vector.NewVec2f(3, 4)).PositionAtDistance(10))

	stacked := NewPolyline(vector.NewVec2f(1, 1), vector.NewVec2f(1, 1))
	assert.Equal(t, float32(0), stacked.Length())
	assert.Equal(t, vector.NewVec2f(1, 1), stacked.PositionAtDistance(5))
}
