package cmd

import (
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var stepEvery int

var stepCmd = &cobra.Command{
	Use:   "step <snapshot>",
	Short: "Show the star rating after every object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hitObjects, diff, err := loadMap(args[0])
		if err != nil {
			return err
		}

		if !config.Calculation.LogSteps {
			log.SetOutput(io.Discard)
			defer log.SetOutput(os.Stderr)
		}

		steps := calculator.CalculateStep(hitObjects, diff)

		if done, err := writeYAML(cmd.OutOrStdout(), steps); done {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Object", "Time", "Stars", "Aim", "Speed", "Combo")

		every := max(1, stepEvery)

		for i, attr := range steps {
			if i%every != 0 && i != len(steps)-1 {
				continue
			}

			table.Append([]string{
				count(i + 1),
				humanize.FormatFloat("#,###.", hitObjects[i].StartTime),
				stars(attr.Total),
				stars(attr.Aim),
				stars(attr.Speed),
				count(attr.MaxCombo),
			})
		}

		table.Render()

		return nil
	},
}

func init() {
	stepCmd.Flags().IntVarP(&stepEvery, "every", "e", 1, "print every n-th object")
	rootCmd.AddCommand(stepCmd)
}
