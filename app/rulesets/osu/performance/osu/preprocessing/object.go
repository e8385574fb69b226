package preprocessing

import (
	"math"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/framework/math/vector"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25
)

type DifficultyObject struct {
	// Shared sequence the object belongs to, used for neighbour lookups
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff *difficulty.Difficulty

	BaseObject *objects.HitObject

	// Lazy cursor simulation of BaseObject, nil unless it's a slider
	Lazy *LazySlider

	lastObject     *objects.HitObject
	lastLastObject *objects.HitObject

	DeltaTime float64

	StartTime float64

	EndTime float64

	LazyJumpDistance float64

	MinimumJumpDistance float64

	TravelDistance float64

	angle    float64
	hasAngle bool

	MinimumJumpTime float64

	TravelTime float64

	StrainTime float64

	GreatWindow float64

	ClockRate float64
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject *objects.HitObject, d *difficulty.Difficulty, cache *SliderCache, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	obj := &DifficultyObject{
		listOfDiffs:    listOfDiffs,
		Index:          index,
		Diff:           d,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      (hitObject.StartTime - lastObject.StartTime) / d.Speed,
		StartTime:      hitObject.StartTime / d.Speed,
		EndTime:        hitObject.EndTime() / d.Speed,
		GreatWindow:    2 * d.Hit300U / d.Speed,
		ClockRate:      d.Speed,
	}

	obj.StrainTime = max(obj.DeltaTime, MinDeltaTime)

	obj.setDistances(cache)

	return obj
}

func (o *DifficultyObject) IsSlider() bool {
	return o.BaseObject.IsSlider()
}

func (o *DifficultyObject) IsSpinner() bool {
	return o.BaseObject.IsSpinner()
}

// Angle returns the angle formed with the two previous objects. ok is false when
// there aren't two valid non-spinner predecessors.
func (o *DifficultyObject) Angle() (angle float64, ok bool) {
	return o.angle, o.hasAngle
}

func (o *DifficultyObject) GetDoubletapness(osuNextObj *DifficultyObject) float64 {
	if osuNextObj != nil {
		currDeltaTime := max(1, o.DeltaTime)
		nextDeltaTime := max(1, osuNextObj.DeltaTime)
		deltaDifference := math.Abs(nextDeltaTime - currDeltaTime)
		speedRatio := currDeltaTime / max(currDeltaTime, deltaDifference)
		windowRatio := math.Pow(min(1, currDeltaTime/o.GreatWindow), 2)
		return 1 - math.Pow(speedRatio, 1-windowRatio)
	}

	return 0
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 || index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index < 0 || index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) setDistances(cache *SliderCache) {
	if o.BaseObject.IsSlider() {
		o.Lazy = cache.Get(o.BaseObject)

		// Bonus for repeat sliders until a better per nested object strain system can be achieved.
		repeatBonus := float32(math.Pow(1+float64(o.BaseObject.Slider.RepeatCount)/2.5, 1.0/2.5))

		o.TravelDistance = float64(o.Lazy.LazyTravelDistance * repeatBonus)
		o.TravelTime = max(o.Lazy.LazyTravelTime/o.Diff.Speed, MinDeltaTime)
	}

	// We don't need to calculate either angle or distance when one of the last->curr objects is a spinner
	if o.BaseObject.IsSpinner() || o.lastObject.IsSpinner() {
		return
	}

	// We will scale distances by this factor, so we can assume a uniform CircleSize among beatmaps.
	scalingFactor := float32(radiusScalingFactor(o.BaseObject.Radius))

	if o.BaseObject.Radius < CircleSizeBuffThreshold {
		smallCircleBonus := min(CircleSizeBuffThreshold-float32(o.BaseObject.Radius), 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	lastCursorPosition := getEndCursorPosition(o.lastObject, cache)

	o.LazyJumpDistance = float64(o.BaseObject.StackedPosition.Scl(scalingFactor).Sub(lastCursorPosition.Scl(scalingFactor)).Len())
	o.MinimumJumpTime = o.StrainTime
	o.MinimumJumpDistance = o.LazyJumpDistance

	if o.lastObject.IsSlider() {
		lastSlider := cache.Get(o.lastObject)

		lastTravelTime := max(lastSlider.LazyTravelTime/o.Diff.Speed, MinDeltaTime)
		o.MinimumJumpTime = max(o.StrainTime-lastTravelTime, MinDeltaTime)

		//
		// There are two types of slider-to-object patterns to consider in order to better approximate the real movement a player will take to jump between the hitobjects.
		//
		// 1. The anti-flow pattern, where players cut the slider short in order to move to the next hitobject.
		//
		//      <======o==>  ← slider
		//             |     ← most natural jump path
		//             o     ← a follow-up hitcircle
		//
		// In this case the most natural jump path is approximated by LazyJumpDistance.
		//
		// 2. The flow pattern, where players follow through the slider to its visual extent into the next hitobject.
		//
		//      <======o==>---o
		//                  ↑
		//        most natural jump path
		//
		// In this case the most natural jump path is better approximated by a new distance called "tailJumpDistance" - the distance between the slider's tail and the next hitobject.
		//
		// Thus, the player is assumed to jump the minimum of these two distances in all cases.
		//

		tailJumpDistance := lastSlider.TailPosition().Dst(o.BaseObject.StackedPosition) * scalingFactor
		o.MinimumJumpDistance = max(0, min(o.LazyJumpDistance-float64(maximumSliderRadius-assumedSliderRadius), float64(tailJumpDistance-maximumSliderRadius)))
	}

	if o.lastLastObject != nil && !o.lastLastObject.IsSpinner() {
		lastLastCursorPosition := getEndCursorPosition(o.lastLastObject, cache)

		v1 := lastLastCursorPosition.Sub(o.lastObject.StackedPosition)
		v2 := o.BaseObject.StackedPosition.Sub(lastCursorPosition)

		dot := v1.Dot(v2)
		det := v1.Cross(v2)

		// atan2(0, 0) is 0, so overlapping objects give a zero angle rather than NaN
		o.angle = math.Abs(math.Atan2(float64(det), float64(dot)))
		o.hasAngle = true
	}
}

func getEndCursorPosition(obj *objects.HitObject, cache *SliderCache) vector.Vector2f {
	if obj.IsSlider() {
		return cache.Get(obj).LazyEndPosition
	}

	return obj.StackedPosition
}

// radiusScalingFactor normalizes distances to a radius of NormalizedRadius.
// Non-positive radii leave distances unscaled.
func radiusScalingFactor(radius float64) float64 {
	if radius <= 0 {
		return 1
	}

	return float64(NormalizedRadius / float32(radius))
}
