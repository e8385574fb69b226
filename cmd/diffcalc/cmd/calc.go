package cmd

import (
	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/osu"
)

var calculator = osu.NewDifficultyCalculator()

var calcCmd = &cobra.Command{
	Use:   "calc <snapshot>",
	Short: "Calculate the difficulty attributes of a map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hitObjects, diff, err := loadMap(args[0])
		if err != nil {
			return err
		}

		attr := calculator.CalculateSingle(hitObjects, diff)

		return printAttributes(cmd, attr)
	},
}

func printAttributes(cmd *cobra.Command, attr api.Attributes) error {
	if done, err := writeYAML(cmd.OutOrStdout(), attr); done {
		return err
	}

	table := newTable(cmd.OutOrStdout(), "Attribute", "Value")
	table.SetCaption(true, versionCaption(calculator))

	table.AppendBulk([][]string{
		{"Stars", stars(attr.Total)},
		{"Aim", stars(attr.Aim)},
		{"Speed", stars(attr.Speed)},
		{"Speed notes", precise(attr.SpeedNoteCount)},
		{"Slider factor", precise(attr.SliderFactor)},
		{"Aim difficult strains", precise(attr.AimDifficultStrainCount)},
		{"Speed difficult strains", precise(attr.SpeedDifficultStrainCount)},
		{"AR", stars(attr.ApproachRate)},
		{"OD", stars(attr.OverallDifficulty)},
		{"HP", stars(attr.DrainRate)},
		{"Circles", count(attr.Circles)},
		{"Sliders", count(attr.Sliders)},
		{"Spinners", count(attr.Spinners)},
		{"Max combo", count(attr.MaxCombo)},
	})

	table.Render()

	return nil
}

func init() {
	rootCmd.AddCommand(calcCmd)
}
