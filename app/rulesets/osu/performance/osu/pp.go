package osu

import (
	"math"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/skills"
)

const (
	// PerformanceBaseMultiplier keeps the final pp value scaled around what it used to be when changing things
	PerformanceBaseMultiplier float64 = 1.15

	basePerformanceNorm float64 = 1.1
)

// basePerformance merges the aim and speed performance of a map with a generalized power mean.
func basePerformance(aimRating, speedRating float64) float64 {
	baseAimPerformance := skills.DefaultDifficultyToPerformance(aimRating)
	baseSpeedPerformance := skills.DefaultDifficultyToPerformance(speedRating)

	return math.Pow(
		math.Pow(baseAimPerformance, basePerformanceNorm)+
			math.Pow(baseSpeedPerformance, basePerformanceNorm),
		1.0/basePerformanceNorm,
	)
}

// starRating maps base performance back onto the star scale.
func starRating(basePerformance float64) float64 {
	if basePerformance <= 0.00001 {
		return 0
	}

	return math.Cbrt(PerformanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/basePerformanceNorm)*basePerformance) + 4)
}
