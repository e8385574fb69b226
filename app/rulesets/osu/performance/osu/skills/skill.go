package skills

import (
	"math"
	"slices"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/framework/math/mutils"
)

const difficultyMultiplier = 0.0675

// Skill accumulates per-object strains into fixed-length sections and weighs the section peaks into a difficulty value.
type Skill struct {
	// The weight by which each strain value decays.
	DecayWeight float64

	// The length of each strain section.
	SectionLength float64

	// The number of sections with the highest strains, which the peak strain reductions will apply to.
	// This is done in order to decrease their impact on the overall difficulty of the map for this skill.
	ReducedSectionCount int

	// The baseline multiplier applied to the section with the biggest strain.
	ReducedStrainBaseline float64

	// Delegate to calculate strain value of skill
	StrainValueOf func(current *preprocessing.DifficultyObject) float64

	// Delegate to calculate the strain a new section starts with
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks   []float64
	objectStrains []float64

	peakWeights []float64
}

func NewSkill() *Skill {
	return &Skill{
		DecayWeight:           0.9,
		SectionLength:         400,
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
	}
}

// Process calculates the strain value of current and stores the value in it.
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	// The first object doesn't generate a strain, so we begin with an incremented section end
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.saveCurrentPeak()
		skill.startNewSectionFrom(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	strain := skill.StrainValueOf(current)

	skill.objectStrains = append(skill.objectStrains, strain)
	skill.currentSectionPeak = max(strain, skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns the peaks of all finished sections followed by the peak of the current one.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)
	peaks[len(peaks)-1] = skill.currentSectionPeak

	return peaks
}

// DifficultyValue weighs the sorted section peaks, reducing the highest ones to limit the impact of difficulty spikes.
func (skill *Skill) DifficultyValue() float64 {
	if skill.peakWeights == nil { // Precalculated peak weights
		skill.peakWeights = make([]float64, skill.ReducedSectionCount)

		for i := range skill.ReducedSectionCount {
			progress := float64(float32(i) / float32(skill.ReducedSectionCount))
			scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(progress, 0, 1)))
			skill.peakWeights[i] = mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
		}
	}

	// Sections with 0 strain are excluded to avoid worst-case time complexity of the following sort (e.g. /b/2351871).
	// These sections will not contribute to the difficulty.
	strains := slices.DeleteFunc(skill.GetCurrentStrainPeaks(), func(peak float64) bool {
		return peak <= 0
	})

	slices.SortFunc(strains, descending)

	for i := range min(len(strains), skill.ReducedSectionCount) {
		strains[i] *= skill.peakWeights[i]
	}

	slices.SortFunc(strains, descending)

	difficulty := 0.0
	weight := 1.0

	// Difficulty is the weighted sum of the highest strains from every section.
	// We're sorting from highest to lowest strain.
	for _, strain := range strains {
		difficulty += strain * weight
		weight *= skill.DecayWeight
	}

	return difficulty
}

// CountDifficultStrains returns the number of strains weighted against the top strain.
// The result is scaled by clock rate as it affects the total number of strains.
func (skill *Skill) CountDifficultStrains() float64 {
	difficulty := skill.DifficultyValue()
	if difficulty == 0 {
		return 0
	}

	consistentTopStrain := difficulty / 10 // What would the top strain be if all strain values were identical

	sum := 0.0

	// Use a weighted sum of all strains. Constants are arbitrary and give nice values
	for _, strain := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(strain/consistentTopStrain-0.88)))
	}

	return sum
}

func (skill *Skill) saveCurrentPeak() {
	skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
}

func (skill *Skill) startNewSectionFrom(end float64, current *preprocessing.DifficultyObject) {
	// The maximum strain of the new section is not zero by default
	// This means we need to capture the strain level at the beginning of the new section, and use that as the initial peak level.
	skill.currentSectionPeak = skill.CalculateInitialStrain(end, current)
}

// DefaultDifficultyToPerformance converts a skill rating to its base performance value.
func DefaultDifficultyToPerformance(difficulty float64) float64 {
	return math.Pow(5.0*max(1.0, difficulty/difficultyMultiplier)-4.0, 3.0) / 100000.0
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}

	return 0
}
