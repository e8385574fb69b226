package objects

import (
	"slices"

	"github.com/osucad/diffcalc/framework/math/vector"
)

const (
	// TailLeniency is how early the slider tail can be tracked relative to the slider end.
	TailLeniency = -36.0

	maxSliderLength = 100000.0
)

// Path samples slider positions relative to the slider head.
type Path interface {
	PositionAtDistance(d float64) vector.Vector2f
}

type NestedKind uint8

const (
	Head NestedKind = iota
	Tick
	Repeat
	Tail
)

func (k NestedKind) String() string {
	switch k {
	case Head:
		return "head"
	case Tick:
		return "tick"
	case Repeat:
		return "repeat"
	case Tail:
		return "tail"
	}

	return "unknown"
}

// NestedEvent is a judged point inside a slider.
type NestedEvent struct {
	Kind      NestedKind
	Time      float64
	SpanIndex int

	// PathProgress is the position along the path in [0, 1]
	PathProgress float64

	StackedPosition vector.Vector2f
}

type SliderData struct {
	ExpectedDistance float64

	// Velocity in osu!pixels per millisecond
	Velocity    float64
	RepeatCount int

	Path Path

	// Nested events in time order: head, ticks, repeats, tail
	Nested []NestedEvent
}

func (s *SliderData) SpanCount() int {
	return s.RepeatCount + 1
}

// PositionAtProgress returns the path offset at progress in [0, 1] of the expected distance.
func (s *SliderData) PositionAtProgress(progress float64) vector.Vector2f {
	if s.Path == nil {
		return vector.Vector2f{}
	}

	return s.Path.PositionAtDistance(progress * s.ExpectedDistance)
}

// NewSlider creates a slider and generates its nested events. tickDistance of 0 disables ticks.
func NewSlider(time float64, position vector.Vector2f, path Path, expectedDistance, velocity float64, repeatCount int, tickDistance, radius, preempt float64) *HitObject {
	data := &SliderData{
		ExpectedDistance: expectedDistance,
		Velocity:         velocity,
		RepeatCount:      max(0, repeatCount),
		Path:             path,
	}

	duration := 0.0
	if velocity > 0 {
		duration = float64(data.SpanCount()) * expectedDistance / velocity
	}

	obj := &HitObject{
		Kind:            Slider,
		StartTime:       time,
		Duration:        duration,
		Position:        position,
		StackedPosition: position,
		Radius:          radius,
		TimePreempt:     preempt,
		Slider:          data,
	}

	data.Nested = GenerateNestedEvents(obj, tickDistance)
	obj.StackedEndPosition = position.Add(data.PositionAtProgress(float64(data.SpanCount() % 2)))

	return obj
}

// SpanDuration is the time taken to traverse the path once.
func (o *HitObject) SpanDuration() float64 {
	if !o.IsSlider() {
		return 0
	}

	return o.Duration / float64(o.Slider.SpanCount())
}

// GenerateNestedEvents builds head, tick, repeat and tail events for a slider.
func GenerateNestedEvents(obj *HitObject, tickDistance float64) []NestedEvent {
	s := obj.Slider

	spanCount := s.SpanCount()
	spanDuration := obj.SpanDuration()

	length := min(maxSliderLength, s.ExpectedDistance)
	tickDistance = max(0, min(tickDistance, length))

	// Ticks too close to the end of a span are skipped
	minDistanceFromEnd := s.Velocity * 10

	event := func(kind NestedKind, time float64, span int, progress float64) NestedEvent {
		return NestedEvent{
			Kind:            kind,
			Time:            time,
			SpanIndex:       span,
			PathProgress:    progress,
			StackedPosition: obj.StackedPosition.Add(s.PositionAtProgress(progress)),
		}
	}

	events := []NestedEvent{event(Head, obj.StartTime, 0, 0)}

	for span := 0; span < spanCount; span++ {
		spanStartTime := obj.StartTime + float64(span)*spanDuration
		reversed := span%2 == 1

		if tickDistance > 0 && length > 0 {
			var ticks []NestedEvent

			for d := tickDistance; d <= length; d += tickDistance {
				if d >= length-minDistanceFromEnd {
					break
				}

				pathProgress := d / length
				timeProgress := pathProgress
				if reversed {
					timeProgress = 1 - pathProgress
				}

				ticks = append(ticks, event(Tick, spanStartTime+timeProgress*spanDuration, span, pathProgress))
			}

			if reversed {
				slices.Reverse(ticks)
			}

			events = append(events, ticks...)
		}

		if span < spanCount-1 {
			events = append(events, event(Repeat, spanStartTime+spanDuration, span, float64((span+1)%2)))
		}
	}

	events = append(events, event(Tail, obj.StartTime+float64(spanCount)*spanDuration, spanCount-1, float64(spanCount%2)))

	return events
}

// LastTick returns the index of the last tick, or -1 if the slider has none.
func (s *SliderData) LastTick() int {
	for i := len(s.Nested) - 1; i >= 0; i-- {
		if s.Nested[i].Kind == Tick {
			return i
		}
	}

	return -1
}
