package difficulty

const (
	// Radius of a CS5 hit object before scaling
	objectRadius = 64.0

	// Compensates for the legacy gamefield scaling rounding
	brokenGamefieldRoundingAllowance = 1.00041
)

type Difficulty struct {
	hpDrain           float64
	circleSize        float64
	overallDifficulty float64
	approachRate      float64

	Mods Modifier

	customSpeed float64

	// Speed is the clock rate applied to every time-derived quantity
	Speed float64

	HPReal float64
	CSReal float64
	ODReal float64
	ARReal float64

	CircleRadiusU float64

	// PreemptU is the unscaled approach time
	PreemptU float64

	Hit50U  float64
	Hit100U float64
	Hit300U float64
}

func NewDifficulty(hp, cs, od, ar float64) *Difficulty {
	diff := &Difficulty{
		hpDrain:           hp,
		circleSize:        cs,
		overallDifficulty: od,
		approachRate:      ar,
		customSpeed:       -1,
	}

	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	hpDrain := diff.hpDrain
	diff.CSReal = diff.circleSize
	diff.ODReal = diff.overallDifficulty
	diff.ARReal = diff.approachRate

	if diff.Mods.Active(HardRock) {
		hpDrain = min(hpDrain*1.4, 10)
		diff.CSReal = min(diff.CSReal*1.3, 10)
		diff.ODReal = min(diff.ODReal*1.4, 10)
		diff.ARReal = min(diff.ARReal*1.4, 10)
	}

	if diff.Mods.Active(Easy) {
		hpDrain /= 2
		diff.CSReal /= 2
		diff.ODReal /= 2
		diff.ARReal /= 2
	}

	diff.HPReal = hpDrain
	diff.CircleRadiusU = CircleRadius(diff.CSReal)

	diff.PreemptU = DifficultyRange(diff.ARReal, 1800, 1200, 450)

	diff.Hit50U = DifficultyRange(diff.ODReal, 200, 150, 100)
	diff.Hit100U = DifficultyRange(diff.ODReal, 140, 100, 60)
	diff.Hit300U = DifficultyRange(diff.ODReal, 80, 50, 20)

	diff.Speed = diff.Mods.GetSpeed()
	if diff.customSpeed >= 0 {
		diff.Speed = diff.customSpeed
	}
}

func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods
	diff.calculate()
}

// SetCustomSpeed overrides the clock rate implied by the mods. Negative values restore it.
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	diff.customSpeed = speed
	diff.calculate()
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods.Active(mods)
}

func (diff *Difficulty) GetHPDrain() float64 {
	return diff.hpDrain
}

func (diff *Difficulty) GetCS() float64 {
	return diff.circleSize
}

func (diff *Difficulty) GetOD() float64 {
	return diff.overallDifficulty
}

func (diff *Difficulty) GetAR() float64 {
	return diff.approachRate
}

// Clone returns an independent copy, safe to adjust for another calculation.
func (diff *Difficulty) Clone() *Difficulty {
	clone := *diff
	return &clone
}

// DifficultyRange maps a 0-10 difficulty value onto [min, mid, max], mid being the value at 5.
func DifficultyRange(difficulty, min, mid, max float64) float64 {
	switch {
	case difficulty > 5:
		return mid + (max-mid)*(difficulty-5)/5
	case difficulty < 5:
		return mid - (mid-min)*(5-difficulty)/5
	default:
		return mid
	}
}

// PreemptToAR is the inverse of the approach rate preempt range.
func PreemptToAR(preempt float64) float64 {
	if preempt > 1200 {
		return (1800 - preempt) / 120
	}

	return (1200-preempt)/150 + 5
}

// GreatWindowToOD is the inverse of the 300 hit window range.
func GreatWindowToOD(window float64) float64 {
	return (80 - window) / 6
}

func CircleRadius(cs float64) float64 {
	return objectRadius * (1.0 - 0.7*(cs-5)/5) / 2 * brokenGamefieldRoundingAllowance
}

// CircleScale is the ratio of circle radius to the default object radius.
func CircleScale(cs float64) float64 {
	return CircleRadius(cs) / objectRadius
}
