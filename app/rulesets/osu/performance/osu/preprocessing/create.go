package preprocessing

import (
	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
)

// CreateDifficultyObjects builds one DifficultyObject for every hit object after the first.
// A nil cache gets replaced with a fresh one, so lazy slider data is computed once per call.
func CreateDifficultyObjects(hitObjects []*objects.HitObject, d *difficulty.Difficulty, cache *SliderCache) []*DifficultyObject {
	if len(hitObjects) < 2 {
		return []*DifficultyObject{}
	}

	if cache == nil {
		cache = NewSliderCache()
	}

	diffObjects := make([]*DifficultyObject, 0, len(hitObjects)-1)

	for i := 1; i < len(hitObjects); i++ {
		var lastLast *objects.HitObject
		if i > 1 {
			lastLast = hitObjects[i-2]
		}

		diffObjects = append(diffObjects, NewDifficultyObject(hitObjects[i], lastLast, hitObjects[i-1], d, cache, &diffObjects, len(diffObjects)))
	}

	return diffObjects
}
