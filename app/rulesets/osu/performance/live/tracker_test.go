package live

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu"
	"github.com/osucad/diffcalc/framework/math/curves"
	"github.com/osucad/diffcalc/framework/math/vector"
)

func testMap(diff *difficulty.Difficulty, count int) []*objects.HitObject {
	hitObjects := make([]*objects.HitObject, 0, count)
	path := curves.NewPolyline(vector.NewVec2f(0, 0), vector.NewVec2f(150, 0))

	for i := 0; i < count; i++ {
		time := 1000 + float64(i)*300
		pos := vector.NewVec2f(float32(50+(i%3)*150), float32(100+(i%2)*150))

		if i%3 == 2 {
			hitObjects = append(hitObjects, objects.NewSlider(time, pos, path, 150, 1, 0, 75, diff.CircleRadiusU, diff.PreemptU))
			continue
		}

		hitObjects = append(hitObjects, objects.NewCircle(time, pos, diff.CircleRadiusU, diff.PreemptU))
	}

	return hitObjects
}

func TestTracker_Flush(t *testing.T) {
	tracker := NewTracker(time.Hour)
	defer tracker.Close()

	attributes, stale := tracker.Attributes()
	assert.False(t, stale)
	assert.Zero(t, attributes.ObjectCount)

	diff := difficulty.NewDifficulty(5, 4, 8, 9)
	hitObjects := testMap(diff, 30)

	tracker.Update(hitObjects, diff)

	// Nothing is recalculated before the debounce expires
	attributes, stale = tracker.Attributes()
	assert.True(t, stale)
	assert.Zero(t, attributes.ObjectCount)

	tracker.Flush()

	attributes, stale = tracker.Attributes()
	assert.False(t, stale)
	assert.Equal(t, osu.NewDifficultyCalculator().CalculateSingle(hitObjects, diff), attributes)
}

func TestTracker_Debounce(t *testing.T) {
	tracker := NewTracker(20 * time.Millisecond)
	defer tracker.Close()

	var updates atomic.Int32
	tracker.OnUpdate(func(attributes api.Attributes) {
		updates.Add(1)
	})

	diff := difficulty.NewDifficulty(5, 4, 8, 9)
	hitObjects := testMap(diff, 30)

	for i := 10; i <= 30; i += 10 {
		tracker.Update(hitObjects[:i], diff)
	}

	require.Eventually(t, func() bool {
		_, stale := tracker.Attributes()
		return !stale
	}, 2*time.Second, 5*time.Millisecond)

	attributes, _ := tracker.Attributes()
	assert.Equal(t, 30, attributes.ObjectCount)
	assert.GreaterOrEqual(t, updates.Load(), int32(1))
}

func TestTracker_SetDifficulty(t *testing.T) {
	tracker := NewTracker(time.Hour)
	defer tracker.Close()

	diff := difficulty.NewDifficulty(5, 4, 8, 9)
	hitObjects := testMap(diff, 30)

	tracker.Update(hitObjects, diff)
	tracker.Flush()

	nomod, _ := tracker.Attributes()
	cached := tracker.cache.Len()
	assert.Equal(t, 10, cached)

	doubleTime := diff.Clone()
	doubleTime.SetMods(difficulty.DoubleTime)

	tracker.SetDifficulty(doubleTime)
	tracker.Flush()

	attributes, stale := tracker.Attributes()
	assert.False(t, stale)
	assert.Greater(t, attributes.Total, nomod.Total)
	assert.Equal(t, cached, tracker.cache.Len())

	tracker.Invalidate()
	tracker.Flush()

	invalidated, _ := tracker.Attributes()
	assert.Equal(t, attributes, invalidated)
}

func TestTracker_Close(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	tracker.Close()
	tracker.Update(testMap(diff, 10), diff)

	time.Sleep(20 * time.Millisecond)

	_, stale := tracker.Attributes()
	assert.True(t, stale)

	tracker.Flush()

	_, stale = tracker.Attributes()
	assert.True(t, stale)
}
