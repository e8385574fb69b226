package evaluators

import (
	"math"
	"slices"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
	"github.com/osucad/diffcalc/framework/math/mutils"
)

const (
	historyTimeMax          float64 = 5 * 1000 // 5 seconds
	historyObjectsMax       int     = 32
	rhythmOverallMultiplier float64 = 0.95
	rhythmRatioMultiplier   float64 = 12.0
)

// island is a run of notes sharing roughly the same delta time
type island struct {
	deltaDifferenceEpsilon float64
	delta                  int
	deltaCount             int
}

func newIsland(epsilon float64) *island {
	return &island{
		deltaDifferenceEpsilon: epsilon,
		delta:                  math.MaxInt,
	}
}

func newIslandWithDelta(delta int, epsilon float64) *island {
	return &island{
		deltaDifferenceEpsilon: epsilon,
		delta:                  max(delta, preprocessing.MinDeltaTime),
		deltaCount:             1,
	}
}

func (isl *island) addDelta(delta int) {
	if isl.delta == math.MaxInt {
		isl.delta = max(delta, preprocessing.MinDeltaTime)
	}

	isl.deltaCount++
}

func (isl *island) isSimilarPolarity(other *island) bool {
	return isl.deltaCount%2 == other.deltaCount%2
}

func (isl *island) equals(other *island) bool {
	return mutils.Abs(float64(isl.delta)-float64(other.delta)) < isl.deltaDifferenceEpsilon &&
		isl.deltaCount == other.deltaCount
}

type islandCount struct {
	island *island
	count  int
}

// EvaluateRhythm returns a multiplier (1 and up) for the rhythm complexity of the notes leading up to current.
func EvaluateRhythm(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner() {
		return 0
	}

	rhythmComplexitySum := 0.0

	deltaDifferenceEpsilon := current.GreatWindow * 0.3

	currIsland := newIsland(deltaDifferenceEpsilon)
	previousIsland := newIsland(deltaDifferenceEpsilon)

	// Islands are compared with a tolerance so they can't be used as map keys
	var islandCounts []islandCount

	startRatio := 0.0 // store the ratio of the current start of an island to buff for tighter rhythms

	firstDeltaSwitch := false

	historicalNoteCount := min(current.Index, historyObjectsMax)

	rhythmStart := 0

	for rhythmStart < historicalNoteCount-2 && current.StartTime-current.Previous(rhythmStart).StartTime < historyTimeMax {
		rhythmStart++
	}

	prevObj := current.Previous(rhythmStart)
	lastObj := current.Previous(rhythmStart + 1)

	// we go from the furthest object back to the current one
	for i := rhythmStart; i > 0; i-- {
		currObj := current.Previous(i - 1)

		// scales note 0 to 1 from history to now
		timeDecay := (historyTimeMax - (current.StartTime - currObj.StartTime)) / historyTimeMax
		noteDecay := float64(historicalNoteCount-i) / float64(historicalNoteCount)

		currHistoricalDecay := min(noteDecay, timeDecay) // either we're limited by time or limited by object count.

		currDelta := currObj.StrainTime
		prevDelta := prevObj.StrainTime
		lastDelta := lastObj.StrainTime

		// calculate how much current delta difference deserves a rhythm bonus
		// this function is meant to reduce rhythm bonus for deltas that are multiples of each other (i.e 100 and 200)
		deltaDifferenceRatio := min(prevDelta, currDelta) / max(prevDelta, currDelta)
		currRatio := 1.0 + rhythmRatioMultiplier*min(0.5, math.Pow(math.Sin(math.Pi/deltaDifferenceRatio), 2))

		// reduce ratio bonus if delta difference is too big
		fraction := max(prevDelta/currDelta, currDelta/prevDelta)
		fractionMultiplier := mutils.Clamp(2.0-fraction/8.0, 0.0, 1.0)

		windowPenalty := min(1, max(0, math.Abs(prevDelta-currDelta)-deltaDifferenceEpsilon)/deltaDifferenceEpsilon)

		effectiveRatio := windowPenalty * currRatio * fractionMultiplier

		if firstDeltaSwitch {
			if math.Abs(prevDelta-currDelta) < deltaDifferenceEpsilon {
				// island is still progressing
				currIsland.addDelta(int(currDelta))
			} else {
				// bpm change is into slider, this is easy acc window
				if currObj.IsSlider() {
					effectiveRatio *= 0.125
				}

				// bpm change was from a slider, this is easier typically than circle -> circle
				// unintentional side effect is that bursts with kicksliders at the ends might have lower difficulty than bursts without sliders
				if prevObj.IsSlider() {
					effectiveRatio *= 0.3
				}

				// repeated island polarity (2 -> 4, 3 -> 5)
				if currIsland.isSimilarPolarity(previousIsland) {
					effectiveRatio *= 0.5
				}

				// previous increase happened a note ago, 1/1->1/2-1/4, dont want to buff this.
				if lastDelta > prevDelta+deltaDifferenceEpsilon && prevDelta > currDelta+deltaDifferenceEpsilon {
					effectiveRatio *= 0.125
				}

				// repeated island size (ex: triplet -> triplet)
				if previousIsland.deltaCount == currIsland.deltaCount {
					effectiveRatio *= 0.5
				}

				countIndex := slices.IndexFunc(islandCounts, func(c islandCount) bool {
					return c.island.equals(currIsland)
				})

				if countIndex >= 0 {
					entry := &islandCounts[countIndex]

					// only add island to island counts if they're going one after another
					if previousIsland.equals(currIsland) {
						entry.count++
					}

					// repeated island (ex: triplet -> triplet)
					power := mutils.Logistic(float64(currIsland.delta), 2.75, 0.24, 14)
					effectiveRatio *= min(3.0/float64(entry.count), math.Pow(1.0/float64(entry.count), power))
				} else {
					islandCounts = append(islandCounts, islandCount{island: currIsland, count: 1})
				}

				// scale down the difficulty if the object is doubletappable
				doubletapness := prevObj.GetDoubletapness(prevObj.Next(0))
				effectiveRatio *= 1 - doubletapness*0.75

				rhythmComplexitySum += math.Sqrt(effectiveRatio*startRatio) * currHistoricalDecay

				startRatio = effectiveRatio

				previousIsland = currIsland

				if prevDelta+deltaDifferenceEpsilon < currDelta { // we're slowing down, stop counting
					firstDeltaSwitch = false // if we're speeding up, this stays true and we keep counting island size.
				}

				currIsland = newIslandWithDelta(int(currDelta), deltaDifferenceEpsilon)
			}
		} else if prevDelta > currDelta+deltaDifferenceEpsilon { // we're speeding up
			// Begin counting island until we change speed again.
			firstDeltaSwitch = true

			// bpm change is into slider, this is easy acc window
			if currObj.IsSlider() {
				effectiveRatio *= 0.6
			}

			// bpm change was from a slider, this is easier typically than circle -> circle
			// unintentional side effect is that bursts with kicksliders at the ends might have lower difficulty than bursts without sliders
			if prevObj.IsSlider() {
				effectiveRatio *= 0.6
			}

			startRatio = effectiveRatio

			currIsland = newIslandWithDelta(int(currDelta), deltaDifferenceEpsilon)
		}

		lastObj = prevObj
		prevObj = currObj
	}

	return math.Sqrt(4+rhythmComplexitySum*rhythmOverallMultiplier) / 2.0 // produces multiplier that can be applied to strain. range [1, infinity) (not really though)
}
