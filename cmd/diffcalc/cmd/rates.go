package cmd

import (
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/settings"
)

var ratesFlag []float64

type rateResult struct {
	Rate       float64        `yaml:"rate"`
	Attributes api.Attributes `yaml:"attributes"`
}

var ratesCmd = &cobra.Command{
	Use:   "rates <snapshot>",
	Short: "Calculate a map at several clock rates in parallel",
	Long: `Calculate a map at several clock rates in parallel.

Rates default to calculation.rates from the settings file.

Examples:
  diffcalc rates map.yaml
  diffcalc rates map.yaml --rate 1 --rate 1.25 --rate 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hitObjects, diff, err := loadMap(args[0])
		if err != nil {
			return err
		}

		rates := ratesFlag
		if len(rates) == 0 {
			rates = config.Calculation.Rates
		}

		logCPU(len(rates))

		results, err := calculator.CalculateRates(cmd.Context(), hitObjects, diff, rates)
		if err != nil {
			return err
		}

		if config.Output.Format == settings.FormatYAML {
			out := make([]rateResult, 0, len(results))
			for i, attr := range results {
				out = append(out, rateResult{Rate: rates[i], Attributes: attr})
			}

			_, err := writeYAML(cmd.OutOrStdout(), out)
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Rate", "Stars", "Aim", "Speed", "AR", "OD")
		table.SetCaption(true, versionCaption(calculator))

		for i, attr := range results {
			table.Append([]string{
				rate(rates[i]),
				stars(attr.Total),
				stars(attr.Aim),
				stars(attr.Speed),
				stars(attr.ApproachRate),
				stars(attr.OverallDifficulty),
			})
		}

		table.Render()

		return nil
	},
}

// logCPU reports the processor the parallel calculation runs on
func logCPU(jobs int) {
	model := runtime.GOARCH

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}

	log.Printf("Calculating %d rates on %s using %d threads", jobs, model, min(jobs, runtime.GOMAXPROCS(0)))
}

func init() {
	ratesCmd.Flags().Float64SliceVarP(&ratesFlag, "rate", "r", nil, "clock rate to calculate, repeatable")
	rootCmd.AddCommand(ratesCmd)
}
