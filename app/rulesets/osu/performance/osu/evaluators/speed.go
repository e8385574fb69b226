package evaluators

import (
	"math"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/framework/math/mutils"
)

const (
	singleSpacingThreshold float64 = 125 // 1.25 circles distance between centers
	minSpeedBonus          float64 = 75  // ~200BPM
	speedBalancingFactor   float64 = 40
	distanceMultiplier     float64 = 0.94
)

// EvaluateSpeed rates the tapping difficulty of current from its strain time,
// with bonuses for fast rhythms and spacing, scaled down when it can be double tapped.
func EvaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner() {
		return 0
	}

	// derive strainTime for calculation
	osuCurrObj := current
	osuPrevObj := current.Previous(0)

	strainTime := osuCurrObj.StrainTime
	doubletapness := 1.0 - osuCurrObj.GetDoubletapness(osuCurrObj.Next(0))

	// Cap deltatime to the OD 300 hitwindow.
	// 0.93 is derived from making sure 260bpm OD8 streams aren't nerfed harshly, whilst 0.92 limits the effect of the cap.
	strainTime /= mutils.Clamp((strainTime/osuCurrObj.GreatWindow)/0.93, 0.92, 1)

	// speedBonus will be 0.0 for BPM < 200
	speedBonus := 0.0

	// Add additional scaling bonus for streams/bursts higher than 200bpm
	if strainTime < minSpeedBonus {
		speedBonus = 0.75 * math.Pow((minSpeedBonus-strainTime)/speedBalancingFactor, 2)
	}

	travelDistance := 0.0
	if osuPrevObj != nil {
		travelDistance = osuPrevObj.TravelDistance
	}

	distance := min(singleSpacingThreshold, travelDistance+osuCurrObj.MinimumJumpDistance)

	// Max distance bonus is 0.94 times the speed bonus, reached at 1.25 circles apart
	distanceBonus := math.Pow(distance/singleSpacingThreshold, 3.95) * distanceMultiplier

	// Base difficulty with all bonuses
	return (1 + speedBonus + distanceBonus) * 1000 / strainTime * doubletapness
}
