// Package live keeps the difficulty attributes of a map being edited up to date.
package live

import (
	"log"
	"slices"
	"sync"
	"time"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
)

// Tracker recalculates attributes in the background after edits settle.
// Until a recalculation finishes, readers get the previous result marked as stale.
type Tracker struct {
	calc     *osu.DifficultyCalculator
	debounce time.Duration

	// Held for the whole recalculation, so only one runs at a time.
	// The slider cache is only touched while holding it.
	computeMu sync.Mutex
	cache     *preprocessing.SliderCache

	mu         sync.Mutex
	objects    []*objects.HitObject
	diff       *difficulty.Difficulty
	attributes api.Attributes
	stale      bool
	dropCache  bool
	generation uint64
	timer      *time.Timer
	closed     bool
	onUpdate   func(attributes api.Attributes)
}

func NewTracker(debounce time.Duration) *Tracker {
	return &Tracker{
		calc:     &osu.DifficultyCalculator{},
		debounce: debounce,
		cache:    preprocessing.NewSliderCache(),
	}
}

// OnUpdate sets a callback run after every finished recalculation.
func (t *Tracker) OnUpdate(callback func(attributes api.Attributes)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.onUpdate = callback
}

// Update replaces the objects and difficulty settings and schedules a recalculation.
func (t *Tracker) Update(hitObjects []*objects.HitObject, diff *difficulty.Difficulty) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.objects = slices.Clone(hitObjects)
	t.diff = diff.Clone()
	t.dropCache = true

	t.markDirty()
}

// SetDifficulty changes only the difficulty settings. Lazy slider data doesn't depend on them, so it's kept.
func (t *Tracker) SetDifficulty(diff *difficulty.Difficulty) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.diff = diff.Clone()

	t.markDirty()
}

// Invalidate signals that the current objects were modified in place.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dropCache = true

	t.markDirty()
}

// Attributes returns the latest result and whether it predates the last edit.
func (t *Tracker) Attributes() (attributes api.Attributes, stale bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.attributes, t.stale
}

// Flush cancels a pending recalculation and runs it right away.
func (t *Tracker) Flush() {
	t.mu.Lock()

	if t.timer != nil {
		t.timer.Stop()
	}

	pending := t.stale && !t.closed

	t.mu.Unlock()

	if pending {
		t.recalculate()
	}
}

// Close stops scheduling and waits for a running recalculation to finish.
func (t *Tracker) Close() {
	t.mu.Lock()

	t.closed = true

	if t.timer != nil {
		t.timer.Stop()
	}

	t.mu.Unlock()

	// Wait for a running recalculation
	t.computeMu.Lock()
	defer t.computeMu.Unlock()
}

// markDirty must be called with mu held
func (t *Tracker) markDirty() {
	t.stale = true
	t.generation++

	if t.closed || t.diff == nil {
		return
	}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.debounce, t.recalculate)
		return
	}

	t.timer.Reset(t.debounce)
}

func (t *Tracker) recalculate() {
	t.computeMu.Lock()
	defer t.computeMu.Unlock()

	t.mu.Lock()

	if t.closed || !t.stale || t.diff == nil {
		t.mu.Unlock()
		return
	}

	hitObjects, diff, generation := t.objects, t.diff, t.generation

	dropCache := t.dropCache
	t.dropCache = false

	t.mu.Unlock()

	if dropCache {
		t.cache.Invalidate()
	}

	startTime := time.Now()

	attributes := t.calc.CalculateCached(hitObjects, diff, t.cache)

	log.Println("Recalculated", len(hitObjects), "objects in", time.Since(startTime).Truncate(time.Microsecond).String())

	t.mu.Lock()

	t.attributes = attributes

	// An edit that arrived meanwhile keeps the result stale and has its own recalculation scheduled
	if generation == t.generation {
		t.stale = false
	}

	callback := t.onUpdate

	t.mu.Unlock()

	if callback != nil {
		callback(attributes)
	}
}
