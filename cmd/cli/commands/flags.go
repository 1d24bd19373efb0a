package commands

import (
	"fmt"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BindSliderFlags registers the slider options shared by every command
// and binds them to viper, so a flag wins over env and config.yaml.
func BindSliderFlags(cmd *cobra.Command, viper *viper.Viper) error {
	flags := cmd.PersistentFlags()

	flags.String("clock", "", "clock face, 12h or 24h")
	flags.Int("size", 0, "side of the square view, in points")
	flags.Int("ring-width", 0, "width of the ring the thumbs run on")
	flags.Int("drag-tolerance", 0, "how far inside the ring a touch still counts")
	flags.Int("increment", 0, "minutes a released hand snaps to")
	flags.Int("hands", 0, "1 locks the start hand to midnight")
	flags.String("start", "", "start time, 15:04")
	flags.String("finish", "", "finish time, 15:04")
	flags.Int("max-duration", 0, "longest allowed range in minutes")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("fifo", "", "path of the named pipe")

	bindings := map[string]string{
		config.KeyClock:              "clock",
		config.KeySize:               "size",
		config.KeyRingWidth:          "ring-width",
		config.KeyDragTolerance:      "drag-tolerance",
		config.KeyIncrementMinutes:   "increment",
		config.KeyHands:              "hands",
		config.KeyStart:              "start",
		config.KeyFinish:             "finish",
		config.KeyMaxDurationMinutes: "max-duration",
		config.KeyLogLevel:           "log-level",
		config.KeyFifo:               "fifo",
	}

	for key, name := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("commands: could not bind flag %s: %w", name, err)
		}
	}

	return nil
}
