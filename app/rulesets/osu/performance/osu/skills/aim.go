package skills

import (
	"math"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/evaluators"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
)

const (
	aimSkillMultiplier float64 = 25.18
	aimStrainDecayBase float64 = 0.15
)

// AimSkill represents the skill required to correctly aim at every object in the map with a uniform CircleSize and normalized distances.
type AimSkill struct {
	*Skill

	withSliders   bool
	currentStrain float64
}

func NewAimSkill(withSliders bool) *AimSkill {
	skill := &AimSkill{Skill: NewSkill(), withSliders: withSliders}

	skill.StrainValueOf = skill.aimStrainValue
	skill.CalculateInitialStrain = skill.aimInitialStrain

	return skill
}

func (skill *AimSkill) strainDecay(ms float64) float64 {
	return math.Pow(aimStrainDecayBase, ms/1000)
}

func (skill *AimSkill) aimInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.currentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *AimSkill) aimStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.currentStrain *= skill.strainDecay(current.DeltaTime)
	skill.currentStrain += evaluators.EvaluateAim(current, skill.withSliders) * aimSkillMultiplier

	return skill.currentStrain
}
