package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/settings"
)

func stars(value float64) string {
	return humanize.FormatFloat("#,###.##", value)
}

func precise(value float64) string {
	return humanize.FormatFloat("#,###.####", value)
}

func count(value int) string {
	return humanize.Comma(int64(value))
}

func rate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "x"
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	return table
}

// versionCaption names the star rating revision the numbers come from
func versionCaption(calc api.IDifficultyCalculator) string {
	return fmt.Sprintf("Star rating v%d (%s)", calc.GetVersion(), calc.GetVersionMessage())
}

// writeYAML encodes v when yaml output is selected and reports whether it did
func writeYAML(w io.Writer, v any) (bool, error) {
	if config.Output.Format != settings.FormatYAML {
		return false, nil
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return true, fmt.Errorf("encode output: %w", err)
	}

	return true, encoder.Close()
}
