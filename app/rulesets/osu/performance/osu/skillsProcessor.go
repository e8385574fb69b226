package osu

import (
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/skills"
)

type SkillsProcessor struct {
	Aim          *skills.AimSkill
	AimNoSliders *skills.AimSkill
	Speed        *skills.SpeedSkill
}

func NewSkillsProcessor() *SkillsProcessor {
	return &SkillsProcessor{
		Aim:          skills.NewAimSkill(true),
		AimNoSliders: skills.NewAimSkill(false),
		Speed:        skills.NewSpeedSkill(),
	}
}

func (skills *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	skills.Aim.Process(current)
	skills.AimNoSliders.Process(current)
	skills.Speed.Process(current)
}
