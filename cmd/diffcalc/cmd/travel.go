package cmd

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/preprocessing"
)

type travelPoint struct {
	Time float64 `yaml:"time"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
}

type sliderTravel struct {
	Object   int           `yaml:"object"`
	Distance float32       `yaml:"distance"`
	Time     float64       `yaml:"time"`
	Path     []travelPoint `yaml:"path"`
}

var travelCmd = &cobra.Command{
	Use:   "travel <snapshot>",
	Short: "Show the simulated cursor path through every slider",
	Long: `Show the simulated cursor path through every slider.

The cursor only follows a slider as far as it has to for every tick, repeat
and the tail to stay inside the follow circle. The distance it covers is what
the aim rating counts as slider travel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hitObjects, _, err := loadMap(args[0])
		if err != nil {
			return err
		}

		cache := preprocessing.NewSliderCache()

		var sliders []sliderTravel

		for i, o := range hitObjects {
			if !o.IsSlider() {
				continue
			}

			lazy := cache.Get(o)

			travel := sliderTravel{
				Object:   i + 1,
				Distance: lazy.LazyTravelDistance,
				Time:     lazy.LazyTravelTime,
				Path:     make([]travelPoint, 0, len(lazy.LazyTravelPath)),
			}

			for _, p := range lazy.LazyTravelPath {
				travel.Path = append(travel.Path, travelPoint{Time: p.Time, X: p.Position.X, Y: p.Position.Y})
			}

			sliders = append(sliders, travel)
		}

		if done, err := writeYAML(cmd.OutOrStdout(), sliders); done {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Object", "Time", "X", "Y", "Travelled")

		for _, s := range sliders {
			for j, p := range s.Path {
				object, travelled := "", ""
				if j == 0 {
					object = count(s.Object)
					travelled = precise(float64(s.Distance))
				}

				table.Append([]string{
					object,
					humanize.FormatFloat("#,###.", p.Time),
					strconv.FormatFloat(float64(p.X), 'f', 1, 32),
					strconv.FormatFloat(float64(p.Y), 'f', 1, 32),
					travelled,
				})
			}
		}

		table.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(travelCmd)
}
