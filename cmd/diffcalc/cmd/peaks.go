package cmd

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu/skills"
)

var peaksCmd = &cobra.Command{
	Use:   "peaks <snapshot>",
	Short: "Show aim and speed strain peaks per section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hitObjects, diff, err := loadMap(args[0])
		if err != nil {
			return err
		}

		peaks := calculator.CalculateStrainPeaks(hitObjects, diff)

		if done, err := writeYAML(cmd.OutOrStdout(), peaks); done {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Section", "Ends at", "Aim", "Speed", "Stars")

		sectionLength := skills.NewSkill().SectionLength

		// Sections are aligned to the first rated object in rate-adjusted time
		firstSectionEnd := 0.0
		if len(hitObjects) > 1 {
			firstSectionEnd = math.Ceil(hitObjects[1].StartTime/diff.Speed/sectionLength) * sectionLength
		}

		for i := range peaks.Total {
			sectionEnd := (firstSectionEnd + float64(i)*sectionLength) * diff.Speed

			table.Append([]string{
				count(i + 1),
				humanize.FormatFloat("#,###.", sectionEnd),
				precise(peaks.Aim[i]),
				precise(peaks.Speed[i]),
				stars(peaks.Total[i]),
			})
		}

		table.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(peaksCmd)
}
