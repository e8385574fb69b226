package osu

import (
	"log"
	"math"
	"time"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675
	CurrentVersion    int     = 20241007
)

type DifficultyCalculator struct{}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{}
}

// getStarsFromRawValues converts raw skill values to Attributes
func (diffCalc *DifficultyCalculator) getStarsFromRawValues(rawAim, rawAimNoSliders, rawSpeed float64, attr api.Attributes) api.Attributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(rawAimNoSliders) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	attr.Total = starRating(basePerformance(aimRating, speedRating))
	attr.Aim = aimRating
	attr.SliderFactor = sliderFactor
	attr.Speed = speedRating

	return attr
}

// Retrieves skill values and converts to Attributes
func (diffCalc *DifficultyCalculator) getStars(skills *SkillsProcessor, attr api.Attributes) api.Attributes {
	attr = diffCalc.getStarsFromRawValues(
		skills.Aim.DifficultyValue(),
		skills.AimNoSliders.DifficultyValue(),
		skills.Speed.DifficultyValue(),
		attr,
	)

	attr.SpeedNoteCount = skills.Speed.RelevantNoteCount()
	attr.AimDifficultStrainCount = skills.Aim.CountDifficultStrains()
	attr.SpeedDifficultStrainCount = skills.Speed.CountDifficultStrains()

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o *objects.HitObject, attr *api.Attributes) {
	switch o.Kind {
	case objects.Circle:
		attr.Circles++
	case objects.Slider:
		attr.Sliders++
	case objects.Spinner:
		attr.Spinners++
	}

	attr.MaxCombo += o.MaxCombo()
	attr.ObjectCount++
}

// baseAttributes fills the display values that don't depend on the objects
func baseAttributes(diff *difficulty.Difficulty, preempt float64) api.Attributes {
	return api.Attributes{
		SliderFactor:      1,
		ApproachRate:      difficulty.PreemptToAR(preempt / diff.Speed),
		OverallDifficulty: difficulty.GreatWindowToOD(diff.Hit300U / diff.Speed),
		DrainRate:         diff.HPReal,
	}
}

func (diffCalc *DifficultyCalculator) calculate(objects []*objects.HitObject, diff *difficulty.Difficulty, preempt float64, cache *preprocessing.SliderCache) api.Attributes {
	attr := baseAttributes(diff, preempt)

	for _, o := range objects {
		diffCalc.addObjectToAttribs(o, &attr)
	}

	if len(objects) < 2 {
		return attr
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff, cache)

	skills := NewSkillsProcessor()

	for _, o := range diffObjects {
		skills.Process(o)
	}

	return diffCalc.getStars(skills, attr)
}

// CalculateSingle calculates the final difficulty api.Attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objects []*objects.HitObject, diff *difficulty.Difficulty) api.Attributes {
	return diffCalc.calculate(objects, diff, diff.PreemptU, nil)
}

// CalculateCached is CalculateSingle reusing lazy slider data from cache.
// The cache must not be shared with a concurrent calculation.
func (diffCalc *DifficultyCalculator) CalculateCached(objects []*objects.HitObject, diff *difficulty.Difficulty, cache *preprocessing.SliderCache) api.Attributes {
	return diffCalc.calculate(objects, diff, diff.PreemptU, cache)
}

// Calculate rates objects that already carry their final radius and preempt, given only overall difficulty and clock rate.
// Approach rate is derived from the objects' preempt and drain rate is left at 0.
func (diffCalc *DifficultyCalculator) Calculate(objects []*objects.HitObject, overallDifficulty, clockRate float64) api.Attributes {
	diff := difficulty.NewDifficulty(0, 5, overallDifficulty, 5)
	diff.SetCustomSpeed(clockRate)

	preempt := diff.PreemptU
	if len(objects) > 0 {
		preempt = objects[0].TimePreempt
	}

	return diffCalc.calculate(objects, diff, preempt, nil)
}

// CalculateStep calculates successive star ratings for every part of a beatmap
func (diffCalc *DifficultyCalculator) CalculateStep(objects []*objects.HitObject, diff *difficulty.Difficulty) []api.Attributes {
	if len(objects) == 0 {
		return []api.Attributes{}
	}

	modString := difficulty.GetDiffMaskedMods(diff.Mods).String()
	if modString == "" {
		modString = "NM"
	}

	log.Println("Calculating step SR for mods:", modString)

	startTime := time.Now()

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff, nil)

	skills := NewSkillsProcessor()

	stars := make([]api.Attributes, 1, len(objects))

	stars[0] = baseAttributes(diff, diff.PreemptU)
	diffCalc.addObjectToAttribs(objects[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		diffCalc.addObjectToAttribs(objects[i+1], &attr)

		skills.Process(o)

		stars = append(stars, diffCalc.getStars(skills, attr))
	}

	endTime := time.Now()

	log.Println("Calculations finished! Took", endTime.Sub(startTime).Truncate(time.Millisecond).String())

	return stars
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objects []*objects.HitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff, nil)

	skills := NewSkillsProcessor()

	for _, o := range diffObjects {
		skills.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:   skills.Aim.GetCurrentStrainPeaks(),
		Speed: skills.Speed.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := diffCalc.getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Speed[i], api.Attributes{})
		peaks.Total[i] = stars.Total
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2024-10-07: lazy slider travel with rhythm islands"
}
