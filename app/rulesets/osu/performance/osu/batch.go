package osu

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
)

// CalculateRates calculates the map once per clock rate, in parallel.
// Every calculation gets its own Difficulty and slider cache; objects are only read.
func (diffCalc *DifficultyCalculator) CalculateRates(ctx context.Context, objects []*objects.HitObject, diff *difficulty.Difficulty, rates []float64) ([]api.Attributes, error) {
	for _, rate := range rates {
		if rate <= 0 {
			return nil, fmt.Errorf("invalid clock rate %v", rate)
		}
	}

	startTime := time.Now()

	results := make([]api.Attributes, len(rates))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, rate := range rates {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rate %v: %w", rate, err)
			}

			rateDiff := diff.Clone()
			rateDiff.SetCustomSpeed(rate)

			results[i] = diffCalc.CalculateSingle(objects, rateDiff)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	log.Println("Calculated", len(rates), "rates in", time.Since(startTime).Truncate(time.Millisecond).String())

	return results, nil
}
