package skills

import (
	"math"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/evaluators"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
)

const (
	speedSkillMultiplier float64 = 1.430
	speedStrainDecayBase float64 = 0.3
)

// SpeedSkill represents the skill required to press keys with regards to keeping up with the speed at which objects need to be hit.
type SpeedSkill struct {
	*Skill

	currentStrain float64
	currentRhythm float64
}

func NewSpeedSkill() *SpeedSkill {
	skill := &SpeedSkill{Skill: NewSkill()}
	skill.ReducedSectionCount = 5

	skill.StrainValueOf = skill.speedStrainValue
	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return (skill.currentStrain * skill.currentRhythm) * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *SpeedSkill) speedStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.currentStrain *= skill.strainDecay(current.StrainTime)
	skill.currentStrain += evaluators.EvaluateSpeed(current) * speedSkillMultiplier

	skill.currentRhythm = evaluators.EvaluateRhythm(current)

	return skill.currentStrain * skill.currentRhythm
}

// RelevantNoteCount returns the number of notes weighted against the hardest one.
func (skill *SpeedSkill) RelevantNoteCount() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	maxStrain := skill.objectStrains[0]
	for _, strain := range skill.objectStrains[1:] {
		maxStrain = max(maxStrain, strain)
	}

	if maxStrain == 0 {
		return 0
	}

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1.0 / (1.0 + math.Exp(-(strain/maxStrain*12.0 - 6.0)))
	}

	return sum
}
