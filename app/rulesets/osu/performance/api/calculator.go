package api

import (
	"context"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
)

type IDifficultyCalculator interface {
	// CalculateSingle returns the attributes of the whole map
	CalculateSingle(objects []*objects.HitObject, diff *difficulty.Difficulty) Attributes

	// CalculateStep returns the attributes of the map cut after every object
	CalculateStep(objects []*objects.HitObject, diff *difficulty.Difficulty) []Attributes

	CalculateStrainPeaks(objects []*objects.HitObject, diff *difficulty.Difficulty) StrainPeaks

	// CalculateRates runs an independent calculation for every clock rate
	CalculateRates(ctx context.Context, objects []*objects.HitObject, diff *difficulty.Difficulty, rates []float64) ([]Attributes, error)

	GetVersion() int
	GetVersionMessage() string
}
