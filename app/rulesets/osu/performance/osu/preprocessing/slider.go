package preprocessing

import (
	"math"
	"slices"

	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/framework/math/vector"
)

const (
	maximumSliderRadius float32 = NormalizedRadius * 2.4
	assumedSliderRadius float32 = NormalizedRadius * 1.8
)

type TravelPoint struct {
	Position vector.Vector2f
	Time     float64
}

// LazySlider holds the result of the lazy cursor simulation for one slider.
// It is computed once on creation and never updated afterwards.
type LazySlider struct {
	*objects.HitObject

	LazyEndPosition    vector.Vector2f
	LazyTravelDistance float32
	LazyTravelTime     float64

	// LazyTravelPath is the simulated cursor position after each nested event
	LazyTravelPath []TravelPoint
}

func NewLazySlider(obj *objects.HitObject) *LazySlider {
	slider := &LazySlider{HitObject: obj}
	slider.calculateLazyCursor()

	return slider
}

func (slider *LazySlider) calculateLazyCursor() {
	data := slider.Slider

	startTime := slider.StartTime
	trackingEndTime := max(startTime+slider.Duration+objects.TailLeniency, startTime+slider.Duration/2)

	nestedObjects := slices.Clone(data.Nested)

	if lastTick := data.LastTick(); lastTick >= 0 && nestedObjects[lastTick].Time > trackingEndTime {
		trackingEndTime = nestedObjects[lastTick].Time

		// The last tick is tracked after the tail, so it becomes the final movement
		tick := nestedObjects[lastTick]
		nestedObjects = append(slices.Delete(nestedObjects, lastTick, lastTick+1), tick)
	}

	slider.LazyTravelTime = trackingEndTime - startTime

	endTimeMin := 0.0
	if spanDuration := slider.SpanDuration(); spanDuration > 0 {
		endTimeMin = slider.LazyTravelTime / spanDuration
	}

	if math.Mod(endTimeMin, 2) >= 1 {
		endTimeMin = 1 - math.Mod(endTimeMin, 1)
	} else {
		endTimeMin = math.Mod(endTimeMin, 1)
	}

	// Temporary lazy end position until the real one is derived
	slider.LazyEndPosition = slider.StackedPosition.Add(data.PositionAtProgress(endTimeMin))

	currCursorPosition := slider.StackedPosition

	slider.LazyTravelPath = append(make([]TravelPoint, 0, len(nestedObjects)), TravelPoint{
		Position: currCursorPosition,
		Time:     startTime,
	})

	if len(nestedObjects) < 2 {
		slider.LazyEndPosition = currCursorPosition
		return
	}

	// Thresholds below are in normalized units
	scalingFactor := NormalizedRadius / slider.Radius
	if slider.Radius <= 0 {
		scalingFactor = 1
	}

	for i := 1; i < len(nestedObjects); i++ {
		currMovementObj := nestedObjects[i]

		currMovement := currMovementObj.StackedPosition.Sub(currCursorPosition)
		currMovementLength := scalingFactor * float64(currMovement.Len())

		// Amount of movement required so that the cursor position needs to be updated
		requiredMovement := float64(assumedSliderRadius)

		if i == len(nestedObjects)-1 {
			// The end of a slider has relaxed timing, so the player takes whichever of the
			// real end and the lazy end is closer.
			lazyMovement := slider.LazyEndPosition.Sub(currCursorPosition)

			if lazyMovement.Len() < currMovement.Len() {
				currMovement = lazyMovement
			}

			currMovementLength = scalingFactor * float64(currMovement.Len())
		} else if currMovementObj.Kind == objects.Repeat {
			// Repeats use a tighter threshold
			requiredMovement = NormalizedRadius
		}

		if currMovementLength > requiredMovement {
			ratio := (currMovementLength - requiredMovement) / currMovementLength

			currCursorPosition = currCursorPosition.Add(currMovement.Scl(float32(ratio)))
			currMovementLength *= ratio
			slider.LazyTravelDistance += float32(currMovementLength)
		}

		if i == len(nestedObjects)-1 {
			slider.LazyEndPosition = currCursorPosition
		}

		slider.LazyTravelPath = append(slider.LazyTravelPath, TravelPoint{
			Position: currCursorPosition,
			Time:     currMovementObj.Time,
		})
	}
}

// TailPosition returns the stacked position of the slider's tail event.
func (slider *LazySlider) TailPosition() vector.Vector2f {
	nested := slider.Slider.Nested

	for i := len(nested) - 1; i >= 0; i-- {
		if nested[i].Kind == objects.Tail {
			return nested[i].StackedPosition
		}
	}

	return slider.StackedEndPosition
}

// SliderCache memoizes lazy cursor simulations by object identity.
// It is not safe for concurrent use.
type SliderCache struct {
	sliders map[*objects.HitObject]*LazySlider
}

func NewSliderCache() *SliderCache {
	return &SliderCache{sliders: make(map[*objects.HitObject]*LazySlider)}
}

// Get returns the simulation for obj, running it if it isn't cached yet.
func (cache *SliderCache) Get(obj *objects.HitObject) *LazySlider {
	if slider, ok := cache.sliders[obj]; ok {
		return slider
	}

	slider := NewLazySlider(obj)
	cache.sliders[obj] = slider

	return slider
}

// Invalidate drops every cached simulation.
func (cache *SliderCache) Invalidate() {
	clear(cache.sliders)
}

func (cache *SliderCache) Len() int {
	return len(cache.sliders)
}
