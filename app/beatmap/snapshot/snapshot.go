// Package snapshot decodes finalized hit objects and difficulty settings from YAML (or JSON) files.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/framework/math/curves"
	"github.com/osucad/diffcalc/framework/math/vector"
)

var (
	ErrUnknownType = errors.New("unknown object type")
	ErrOutOfOrder  = errors.New("objects must be sorted by time")
	ErrBadSlider   = errors.New("invalid slider")
	ErrBadSpinner  = errors.New("spinner ends before it starts")
	ErrBadRadius   = errors.New("circle size yields a non-positive radius")
)

// Smallest accepted slider tick spacing in osu!pixels
const minTickDistance = 1.0

type Snapshot struct {
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
	Objects    []Object   `yaml:"objects" json:"objects"`
}

type Difficulty struct {
	HP   float64 `yaml:"hp" json:"hp"`
	CS   float64 `yaml:"cs" json:"cs"`
	OD   float64 `yaml:"od" json:"od"`
	AR   float64 `yaml:"ar" json:"ar"`
	Mods string  `yaml:"mods" json:"mods"`

	// Rate overrides the clock rate implied by the mods when set
	Rate float64 `yaml:"rate" json:"rate,omitempty"`
}

type Object struct {
	Type     string  `yaml:"type" json:"type"`
	Time     float64 `yaml:"time" json:"time"`
	X        float32 `yaml:"x" json:"x"`
	Y        float32 `yaml:"y" json:"y"`
	Stack    int     `yaml:"stack" json:"stack,omitempty"`
	NewCombo bool    `yaml:"new_combo" json:"new_combo,omitempty"`

	// Slider only. Path points are relative to the slider head.
	Path         [][2]float32 `yaml:"path" json:"path,omitempty"`
	Length       float64      `yaml:"length" json:"length,omitempty"`
	Velocity     float64      `yaml:"velocity" json:"velocity,omitempty"`
	Repeats      int          `yaml:"repeats" json:"repeats,omitempty"`
	TickDistance float64      `yaml:"tick_distance" json:"tick_distance,omitempty"`

	// Spinner only
	EndTime float64 `yaml:"end_time" json:"end_time,omitempty"`
}

func Load(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	defer file.Close()

	snapshot, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return snapshot, nil
}

func Decode(r io.Reader) (*Snapshot, error) {
	var snapshot Snapshot

	if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &snapshot, nil
}

// BuildDifficulty creates the difficulty settings with mods and rate applied.
func (s *Snapshot) BuildDifficulty() *difficulty.Difficulty {
	diff := difficulty.NewDifficulty(s.Difficulty.HP, s.Difficulty.CS, s.Difficulty.OD, s.Difficulty.AR)
	diff.SetMods(difficulty.ParseMods(s.Difficulty.Mods))

	if s.Difficulty.Rate > 0 {
		diff.SetCustomSpeed(s.Difficulty.Rate)
	}

	return diff
}

// Build validates the snapshot and creates hit objects sized and timed by diff.
func (s *Snapshot) Build(diff *difficulty.Difficulty) ([]*objects.HitObject, error) {
	if diff.CircleRadiusU <= 0 {
		return nil, ErrBadRadius
	}

	hitObjects := make([]*objects.HitObject, 0, len(s.Objects))

	lastTime := 0.0

	for i, o := range s.Objects {
		if i > 0 && o.Time < lastTime {
			return nil, fmt.Errorf("object %d: %w", i, ErrOutOfOrder)
		}

		lastTime = o.Time

		hitObject, err := o.build(diff)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		hitObjects = append(hitObjects, hitObject)
	}

	return hitObjects, nil
}

func (o *Object) build(diff *difficulty.Difficulty) (*objects.HitObject, error) {
	var hitObject *objects.HitObject

	position := vector.NewVec2f(o.X, o.Y)

	switch o.Type {
	case "circle":
		hitObject = objects.NewCircle(o.Time, position, diff.CircleRadiusU, diff.PreemptU)
	case "slider":
		if len(o.Path) == 0 || o.Velocity < 0 || o.Repeats < 0 || o.Length < 0 {
			return nil, ErrBadSlider
		}

		if o.TickDistance != 0 && o.TickDistance < minTickDistance {
			return nil, fmt.Errorf("%w: tick distance %v is below %v", ErrBadSlider, o.TickDistance, minTickDistance)
		}

		points := make([]vector.Vector2f, 0, len(o.Path))
		for _, p := range o.Path {
			points = append(points, vector.NewVec2f(p[0], p[1]))
		}

		path := curves.NewPolyline(points...)

		length := o.Length
		if length == 0 {
			length = float64(path.Length())
		}

		hitObject = objects.NewSlider(o.Time, position, path, length, o.Velocity, o.Repeats, o.TickDistance, diff.CircleRadiusU, diff.PreemptU)
	case "spinner":
		if o.EndTime < o.Time {
			return nil, ErrBadSpinner
		}

		hitObject = objects.NewSpinner(o.Time, o.EndTime, diff.CircleRadiusU, diff.PreemptU)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, o.Type)
	}

	hitObject.NewCombo = o.NewCombo

	if o.Stack != 0 && !hitObject.IsSpinner() {
		hitObject.ApplyStack(o.Stack, difficulty.CircleScale(diff.CSReal))
	}

	return hitObject, nil
}
