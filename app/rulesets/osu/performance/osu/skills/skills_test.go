package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/framework/math/vector"
)

func circlesAt(times ...float64) []*preprocessing.DifficultyObject {
	hitObjects := make([]*objects.HitObject, 0, len(times))
	for _, time := range times {
		hitObjects = append(hitObjects, objects.NewCircle(time, vector.NewVec2f(0, 0), 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

func stream(count int, interval float64, spacing float32) []*preprocessing.DifficultyObject {
	hitObjects := make([]*objects.HitObject, 0, count)
	for i := 0; i < count; i++ {
		hitObjects = append(hitObjects, objects.NewCircle(float64(i)*interval, vector.NewVec2f(float32(i)*spacing, 0), 50, 600))
	}

	return preprocessing.CreateDifficultyObjects(hitObjects, difficulty.NewDifficulty(5, 4, 8, 9), nil)
}

// fixedSkill returns predefined strains per object and a constant initial section strain
func fixedSkill(strains ...float64) *Skill {
	skill := NewSkill()
	skill.ReducedSectionCount = 2
	skill.ReducedStrainBaseline = 0.5

	skill.StrainValueOf = func(current *preprocessing.DifficultyObject) float64 {
		return strains[current.Index]
	}

	skill.CalculateInitialStrain = func(float64, *preprocessing.DifficultyObject) float64 {
		return 0.5
	}

	return skill
}

func TestSkill_Sections(t *testing.T) {
	skill := fixedSkill(1, 2, 3)

	for _, o := range circlesAt(0, 100, 500, 1300) {
		skill.Process(o)
	}

	// Sections end at 400, 800, 1200 and 1600; the empty one keeps its initial strain
	assert.Equal(t, []float64{1, 2, 0.5, 3}, skill.GetCurrentStrainPeaks())
	assert.Equal(t, []float64{1, 2, 3}, skill.objectStrains)
}

func TestSkill_DifficultyValue(t *testing.T) {
	skill := fixedSkill(1, 2, 3)

	for _, o := range circlesAt(0, 100, 500, 1300) {
		skill.Process(o)
	}

	assert.InDelta(t, 4.264863, skill.DifficultyValue(), 1e-6)

	// Repeated calls don't change the result
	assert.InDelta(t, 4.264863, skill.DifficultyValue(), 1e-6)

	assert.InDelta(t, 3.3, skill.CountDifficultStrains(), 1e-5)
}

func TestSkill_Empty(t *testing.T) {
	skill := fixedSkill()

	assert.Equal(t, []float64{0}, skill.GetCurrentStrainPeaks())
	assert.Zero(t, skill.DifficultyValue())
	assert.Zero(t, skill.CountDifficultStrains())
}

func TestSkill_ZeroPeaksIgnored(t *testing.T) {
	skill := fixedSkill(0, 0, 0)
	skill.CalculateInitialStrain = func(float64, *preprocessing.DifficultyObject) float64 {
		return 0
	}

	for _, o := range circlesAt(0, 100, 500, 1300) {
		skill.Process(o)
	}

	assert.Zero(t, skill.DifficultyValue())
	assert.Zero(t, skill.CountDifficultStrains())
}

func TestDefaultDifficultyToPerformance(t *testing.T) {
	assert.InDelta(t, 0.00001, DefaultDifficultyToPerformance(0), 1e-12)
	assert.InDelta(t, 0.00216, DefaultDifficultyToPerformance(0.135), 1e-12)
}

func TestAimSkill(t *testing.T) {
	stacked := NewAimSkill(true)
	for _, o := range stream(20, 150, 0) {
		stacked.Process(o)
	}

	assert.Zero(t, stacked.DifficultyValue())

	jumps := NewAimSkill(true)
	wider := NewAimSkill(true)

	for _, o := range stream(20, 150, 100) {
		jumps.Process(o)
	}

	for _, o := range stream(20, 150, 200) {
		wider.Process(o)
	}

	assert.Greater(t, jumps.DifficultyValue(), 0.0)
	assert.Greater(t, wider.DifficultyValue(), jumps.DifficultyValue())
	assert.Greater(t, jumps.CountDifficultStrains(), 0.0)
}

func TestSpeedSkill(t *testing.T) {
	empty := NewSpeedSkill()
	assert.Zero(t, empty.RelevantNoteCount())

	diffObjects := stream(40, 100, 0)

	slow := NewSpeedSkill()
	for _, o := range diffObjects {
		slow.Process(o)
	}

	fast := NewSpeedSkill()
	for _, o := range stream(40, 60, 0) {
		fast.Process(o)
	}

	require.Greater(t, slow.DifficultyValue(), 0.0)
	assert.Greater(t, fast.DifficultyValue(), slow.DifficultyValue())

	noteCount := slow.RelevantNoteCount()
	assert.Greater(t, noteCount, 0.0)
	assert.LessOrEqual(t, noteCount, float64(len(diffObjects)))
}
