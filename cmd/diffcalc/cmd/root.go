package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/beatmap/difficulty"
	"github.com/osucad/diffcalc/app/beatmap/objects"
	"github.com/osucad/diffcalc/app/beatmap/snapshot"
	"github.com/osucad/diffcalc/app/settings"
)

var (
	configPath string
	modsFlag   string
	formatFlag string

	config *settings.Settings
)

var rootCmd = &cobra.Command{
	Use:   "diffcalc",
	Short: "Star rating calculator for osu!standard maps",
	Long: `diffcalc rates osu!standard maps described by snapshot files.

A snapshot is a YAML (or JSON) file holding the difficulty settings and the
already finalized hit objects of a map: circles, sliders and spinners.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error

		config, err = settings.Load(configPath)
		if err != nil {
			return err
		}

		if formatFlag != "" {
			config.Output.Format = formatFlag
		}

		if modsFlag != "" {
			config.Calculation.Mods = modsFlag
		}

		return config.Validate()
	},
}

// Execute runs the root command, cancelling it on interrupt
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "diffcalc.yaml", "path to the settings file")
	rootCmd.PersistentFlags().StringVarP(&modsFlag, "mods", "m", "", "mods to apply, e.g. HDDT (overrides the snapshot)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "output format: table or yaml")
}

// loadMap reads a snapshot and builds its objects with the configured mods applied
func loadMap(path string) ([]*objects.HitObject, *difficulty.Difficulty, error) {
	s, err := snapshot.Load(path)
	if err != nil {
		return nil, nil, err
	}

	diff := s.BuildDifficulty()

	if (s.Difficulty.Mods == "" && config.Calculation.Mods != "") || modsFlag != "" {
		diff.SetMods(difficulty.ParseMods(config.Calculation.Mods))
	}

	hitObjects, err := s.Build(diff)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return hitObjects, diff, nil
}
