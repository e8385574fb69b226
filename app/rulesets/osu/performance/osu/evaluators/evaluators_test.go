package evaluators

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/framework/math/curves"
	"github.com/osucad/diffcalc/framework/math/vector"
)

// stream places circles spacing px apart on a horizontal line, one every interval ms
func stream(count int, interval float64, spacing float32) []*preprocessing.DifficultyObject {
	hitObjects := make([]*objects.HitObject, 0, count)

	for i := 0; i < count; i++ {
		hitObjects = append(hitObjects, objects.NewCircle(float64(i)*interval, vector.NewVec2f(float32(i)*spacing, 0), 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

func fromDeltas(deltas []float64) []*preprocessing.DifficultyObject {
	hitObjects := []*objects.HitObject{objects.NewCircle(0, vector.NewVec2f(0, 0), 50, 600)}

	time := 0.0
	for _, delta := range deltas {
		time += delta
		hitObjects = append(hitObjects, objects.NewCircle(time, vector.NewVec2f(0, 0), 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

// pattern places circles at the given points, one every interval ms
func pattern(interval float64, points ...vector.Vector2f) []*preprocessing.DifficultyObject {
	hitObjects := make([]*objects.HitObject, 0, len(points))

	for i, p := range points {
		hitObjects = append(hitObjects, objects.NewCircle(float64(i)*interval, p, 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

// rhythmMap is fromDeltas with the objects at sliderAt (hit object indices) turned into sliders
func rhythmMap(deltas []float64, sliderAt ...int) []*preprocessing.DifficultyObject {
	hitObjects := []*objects.HitObject{objects.NewCircle(0, vector.NewVec2f(0, 0), 50, 600)}

	time := 0.0
	for i, delta := range deltas {
		time += delta

		if slices.Contains(sliderAt, i+1) {
			path := curves.NewPolyline(vector.NewVec2f(0, 0), vector.NewVec2f(100, 0))
			hitObjects = append(hitObjects, objects.NewSlider(time, vector.NewVec2f(0, 0), path, 100, 1, 0, 0, 50, 600))

			continue
		}

		hitObjects = append(hitObjects, objects.NewCircle(time, vector.NewVec2f(0, 0), 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

func withSpinner() []*preprocessing.DifficultyObject {
	return preprocessing.CreateDifficultyObjects([]*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0), 50, 600),
		objects.NewCircle(200, vector.NewVec2f(100, 0), 50, 600),
		objects.NewSpinner(400, 1400, 50, 600),
		objects.NewCircle(1600, vector.NewVec2f(100, 0), 50, 600),
	}, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

func TestEvaluateAim_SkipsEarlyObjectsAndSpinners(t *testing.T) {
	diffObjects := stream(5, 200, 100)

	assert.Zero(t, EvaluateAim(diffObjects[0], true))
	assert.Zero(t, EvaluateAim(diffObjects[1], true))

	spinnerMap := withSpinner()
	require.Len(t, spinnerMap, 3)

	assert.Zero(t, EvaluateAim(spinnerMap[1], true))
	assert.Zero(t, EvaluateAim(spinnerMap[2], true))
}

func TestEvaluateAim_StraightJumps(t *testing.T) {
	diffObjects := stream(6, 200, 100)

	// Straight lines get no angle bonus and constant spacing has no velocity change,
	// which leaves the plain jump velocity
	for _, o := range diffObjects[2:] {
		assert.InDelta(t, 0.5, EvaluateAim(o, true), 1e-6)
		assert.InDelta(t, 0.5, EvaluateAim(o, false), 1e-6)
	}
}

func TestEvaluateAim_Stacked(t *testing.T) {
	for _, o := range stream(6, 100, 0) {
		assert.Zero(t, EvaluateAim(o, true))
	}
}

func TestEvaluateAim_SpacingIncreasesStrain(t *testing.T) {
	small := stream(6, 150, 60)
	large := stream(6, 150, 180)

	assert.Greater(t, EvaluateAim(large[4], true), EvaluateAim(small[4], true))
}

func TestEvaluateAim_AcuteZigZag(t *testing.T) {
	a, b := vector.NewVec2f(0, 0), vector.NewVec2f(100, 0)
	diffObjects := pattern(75, a, b, a, b, a, b, a, b)

	angle, ok := diffObjects[4].Angle()
	require.True(t, ok)
	require.InDelta(t, 0, angle, 1e-9)

	// 100/75 velocity plus the acute bonus of 4/3, halved for repeating, times 1.95
	assert.InDelta(t, 100.0/75+2.0/3*1.95, EvaluateAim(diffObjects[4], true), 1e-6)
}

func TestEvaluateAim_RightAngles(t *testing.T) {
	diffObjects := pattern(150,
		vector.NewVec2f(0, 0),
		vector.NewVec2f(100, 0),
		vector.NewVec2f(100, 100),
		vector.NewVec2f(250, 100),
		vector.NewVec2f(250, 300),
	)

	for _, o := range diffObjects[1:] {
		angle, ok := o.Angle()
		require.True(t, ok)
		require.InDelta(t, math.Pi/2, angle, 1e-6)
	}

	// Wide angle bonus 0.4375 times 1.5, plus the velocity change from 1 to 4/3 px/ms
	assert.InDelta(t, 2.026195, EvaluateAim(diffObjects[3], true), 1e-5)
	assert.InDelta(t, 2.026195, EvaluateAim(diffObjects[3], false), 1e-5)
}

func TestEvaluateAim_AfterSlider(t *testing.T) {
	path := curves.NewPolyline(vector.NewVec2f(0, 0), vector.NewVec2f(200, 0))

	diffObjects := preprocessing.CreateDifficultyObjects([]*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(100, -100), 50, 600),
		objects.NewCircle(500, vector.NewVec2f(100, 0), 50, 600),
		objects.NewSlider(1000, vector.NewVec2f(100, 100), path, 200, 0.5, 0, 0, 50, 600),
		objects.NewCircle(1800, vector.NewVec2f(500, 100), 50, 600),
	}, difficulty.NewDifficulty(5, 4, 8, 9), nil)

	require.Len(t, diffObjects, 3)

	after := diffObjects[2]

	// The tail is 200px away, 80px past the follow circle
	assert.InDelta(t, 308, after.LazyJumpDistance, 1e-3)
	assert.InDelta(t, 80, after.MinimumJumpDistance, 1e-3)
	assert.InDelta(t, 436, after.MinimumJumpTime, 1e-9)

	// Travel through the slider (92/364) plus the 80/436 jump beats the direct 308/800,
	// and the slider velocity is rewarded on top
	assert.InDelta(t, 0.825380, EvaluateAim(after, true), 1e-5)
	assert.InDelta(t, 0.432938, EvaluateAim(after, false), 1e-5)
}

func TestEvaluateSpeed(t *testing.T) {
	spinnerMap := withSpinner()
	assert.Zero(t, EvaluateSpeed(spinnerMap[1]))

	// 150bpm 1/4 with no spacing is just 1000/strainTime
	for _, o := range stream(8, 100, 0) {
		assert.InDelta(t, 10, EvaluateSpeed(o), 1e-9)
	}

	// Spacing of 1.25 circles gives the full distance bonus
	spaced := stream(8, 100, 125)
	assert.InDelta(t, 19.4, EvaluateSpeed(spaced[3]), 1e-6)

	// Strain time below the hit window gets capped, then rewarded with the speed bonus
	fast := stream(8, 50, 0)
	assert.InDelta(t, 22.078668, EvaluateSpeed(fast[3]), 1e-5)
}

func TestEvaluateSpeed_Doubletap(t *testing.T) {
	// The 10ms note can be hit together with the previous one
	diffObjects := fromDeltas([]float64{200, 200, 10, 200, 200})

	assert.InDelta(t, 4.312638, EvaluateSpeed(diffObjects[2]), 1e-5)
	assert.InDelta(t, 5, EvaluateSpeed(diffObjects[4]), 1e-9)
}

func TestEvaluateRhythm_Constant(t *testing.T) {
	for _, o := range stream(40, 100, 0) {
		assert.InDelta(t, 1, EvaluateRhythm(o), 1e-12)
	}

	assert.Zero(t, EvaluateRhythm(withSpinner()[1]))
}

func TestEvaluateRhythm_Changes(t *testing.T) {
	var deltas []float64
	for i := 0; i < 6; i++ {
		deltas = append(deltas, 200, 200, 100, 100, 100)
	}

	diffObjects := fromDeltas(deltas)
	require.Len(t, diffObjects, 30)

	// First island ends at the second slow down
	for _, o := range diffObjects[:6] {
		assert.InDelta(t, 1, EvaluateRhythm(o), 1e-12)
	}

	assert.InDelta(t, 1.094494, EvaluateRhythm(diffObjects[6]), 1e-5)
	assert.InDelta(t, 1.045787, EvaluateRhythm(diffObjects[29]), 1e-5)

	for _, o := range diffObjects {
		assert.GreaterOrEqual(t, EvaluateRhythm(o), 1.0)
	}
}

func TestEvaluateRhythm_Sliders(t *testing.T) {
	deltas := []float64{200, 200, 200, 200, 100, 100, 100, 100, 200, 200, 200}

	circles := rhythmMap(deltas)
	assert.InDelta(t, 1.065059, EvaluateRhythm(circles[len(circles)-1]), 1e-5)

	// Speeding up into a slider
	speedUp := rhythmMap(deltas, 5)
	require.True(t, speedUp[4].IsSlider())
	assert.InDelta(t, 1.050746, EvaluateRhythm(speedUp[len(speedUp)-1]), 1e-5)

	// Slowing down into a slider
	slowDown := rhythmMap(deltas, 9)
	require.True(t, slowDown[8].IsSlider())
	assert.InDelta(t, 1.023474, EvaluateRhythm(slowDown[len(slowDown)-1]), 1e-5)
}

func TestIsland(t *testing.T) {
	a := newIslandWithDelta(100, 10)
	b := newIslandWithDelta(105, 10)

	assert.True(t, a.equals(b))
	assert.True(t, a.isSimilarPolarity(b))

	b.addDelta(105)
	assert.Equal(t, 2, b.deltaCount)
	assert.Equal(t, 105, b.delta)
	assert.False(t, a.equals(b))
	assert.False(t, a.isSimilarPolarity(b))

	// Deltas under the minimum are raised to it
	assert.Equal(t, preprocessing.MinDeltaTime, newIslandWithDelta(10, 10).delta)

	empty := newIsland(10)
	empty.addDelta(120)
	assert.Equal(t, 120, empty.delta)
	assert.Equal(t, 1, empty.deltaCount)

	// Exactly epsilon apart is not the same island
	assert.False(t, newIslandWithDelta(100, 10).equals(newIslandWithDelta(110, 10)))
}
