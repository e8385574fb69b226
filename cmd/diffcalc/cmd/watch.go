package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/osucad/diffcalc/app/rulesets/osu/performance/api"
	"github.com/osucad/diffcalc/app/rulesets/osu/performance/live"
)

var watchCmd = &cobra.Command{
	Use:   "watch <snapshot>",
	Short: "Recalculate a map whenever its snapshot changes",
	Long: `Recalculate a map whenever its snapshot changes.

Edits are debounced by watch.debounce_ms from the settings file, so saving
several times in a row triggers a single recalculation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		tracker := live.NewTracker(config.Debounce())
		defer tracker.Close()

		tracker.OnUpdate(func(attr api.Attributes) {
			if err := printAttributes(cmd, attr); err != nil {
				log.Println("Failed to print attributes:", err)
			}
		})

		reload := func() {
			hitObjects, diff, err := loadMap(path)
			if err != nil {
				log.Println("Failed to load snapshot:", err)
				return
			}

			tracker.Update(hitObjects, diff)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}

		defer watcher.Close()

		// Editors often replace the file instead of writing to it, so the directory is watched
		if err = watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		reload()
		tracker.Flush()

		log.Println("Watching", path)

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(event.Name) != path {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				log.Println("Watcher error:", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
