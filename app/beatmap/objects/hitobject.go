package objects

import (
	"fmt"

	"github.com/osucad/diffcalc/framework/math/vector"
)

// Kind tags the variant of a HitObject.
type Kind uint8

const (
	Circle Kind = iota
	Slider
	Spinner
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Slider:
		return "slider"
	case Spinner:
		return "spinner"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// HitObject is a finalized gameplay object. Positions and stacking are expected
// to be resolved by beatmap processing before difficulty calculation.
type HitObject struct {
	Kind Kind

	StartTime float64
	Duration  float64

	Position           vector.Vector2f
	StackedPosition    vector.Vector2f
	StackedEndPosition vector.Vector2f

	Radius      float64
	TimePreempt float64

	NewCombo bool

	// Slider is set only for Kind == Slider
	Slider *SliderData
}

func NewCircle(time float64, position vector.Vector2f, radius, preempt float64) *HitObject {
	return &HitObject{
		Kind:               Circle,
		StartTime:          time,
		Position:           position,
		StackedPosition:    position,
		StackedEndPosition: position,
		Radius:             radius,
		TimePreempt:        preempt,
	}
}

func NewSpinner(startTime, endTime float64, radius, preempt float64) *HitObject {
	// Spinners are always centered on the playfield
	center := vector.NewVec2f(256, 192)

	return &HitObject{
		Kind:               Spinner,
		StartTime:          startTime,
		Duration:           max(0, endTime-startTime),
		Position:           center,
		StackedPosition:    center,
		StackedEndPosition: center,
		Radius:             radius,
		TimePreempt:        preempt,
	}
}

func (o *HitObject) EndTime() float64 {
	return o.StartTime + o.Duration
}

func (o *HitObject) IsSlider() bool {
	return o.Kind == Slider && o.Slider != nil
}

func (o *HitObject) IsSpinner() bool {
	return o.Kind == Spinner
}

// ApplyStack offsets the stacked positions of the object and its nested events.
func (o *HitObject) ApplyStack(stackHeight int, scale float64) {
	offset := float32(float64(stackHeight) * scale * -6.4)
	stackOffset := vector.NewVec2f(offset, offset)

	o.StackedPosition = o.Position.Add(stackOffset)

	if !o.IsSlider() {
		o.StackedEndPosition = o.StackedPosition
		return
	}

	o.StackedEndPosition = o.Position.Add(o.Slider.PositionAtProgress(float64(o.Slider.SpanCount()%2))).Add(stackOffset)

	for i := range o.Slider.Nested {
		nested := &o.Slider.Nested[i]
		nested.StackedPosition = o.Position.Add(o.Slider.PositionAtProgress(nested.PathProgress)).Add(stackOffset)
	}
}

// MaxCombo returns the combo the object awards when fully hit.
func (o *HitObject) MaxCombo() int {
	if o.IsSlider() {
		return len(o.Slider.Nested)
	}

	return 1
}
