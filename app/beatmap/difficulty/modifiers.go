package difficulty

import "strings"

type Modifier int64

const (
	None     Modifier = 0
	NoFail   Modifier = 1 << 0
	Easy     Modifier = 1 << 1
	Hidden   Modifier = 1 << 3
	HardRock Modifier = 1 << 4

	DoubleTime Modifier = 1 << 6
	HalfTime   Modifier = 1 << 8
	Nightcore  Modifier = 1 << 9
)

// DifficultyAdjustMask contains mods that change the star rating
const DifficultyAdjustMask = Easy | HardRock | DoubleTime | HalfTime | Nightcore

var modNames = []struct {
	mod   Modifier
	short string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{DoubleTime, "DT"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

func (mods Modifier) GetSpeed() float64 {
	speed := 1.0

	if mods.Active(DoubleTime) || mods.Active(Nightcore) {
		speed *= 1.5
	}

	if mods.Active(HalfTime) {
		speed *= 0.75
	}

	return speed
}

func (mods Modifier) String() string {
	var b strings.Builder

	for _, m := range modNames {
		if !mods.Active(m.mod) {
			continue
		}

		// NC implies DT
		if m.mod == DoubleTime && mods.Active(Nightcore) {
			continue
		}

		b.WriteString(m.short)
	}

	return b.String()
}

// ParseMods parses a short mod string like "HDDT". Unknown pairs are ignored.
func ParseMods(s string) Modifier {
	s = strings.ToUpper(s)

	mods := None

	for i := 0; i+1 < len(s); i += 2 {
		for _, m := range modNames {
			if s[i:i+2] == m.short {
				mods |= m.mod
			}
		}
	}

	if mods.Active(Nightcore) {
		mods |= DoubleTime
	}

	return mods
}

// GetDiffMaskedMods strips mods that don't affect difficulty calculation
func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & DifficultyAdjustMask
}
