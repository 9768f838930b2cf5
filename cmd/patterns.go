package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/indicator"
)

// CreatePatternsCmd creates the patterns command, which prints the
// resolved blink catalog so configuration changes can be inspected
// without hardware.
func CreatePatternsCmd() *cobra.Command {
	var peripheral bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Print the resolved blink pattern catalog",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := indicator.DefaultConfig()
			cfg.Peripheral = peripheral
			catalog := indicator.NewCatalog(cfg)

			fmt.Println("Battery (boot):")
			for _, level := range []uint8{0, cfg.BatteryCritical, cfg.BatteryLow, 50, cfg.BatteryHigh, 100} {
				p := catalog.BatteryBoot(level)
				fmt.Printf("  %3d%%  %-8s  %s\n", level, catalog.BatteryTier(level), formatPattern(p))
			}

			fmt.Println("Battery (critical change):")
			fmt.Printf("  %s\n", formatPattern(catalog.BatteryCritical()))

			fmt.Println("Profile:")
			for _, state := range []events.ProfileState{
				events.ProfileConnected, events.ProfileOpen, events.ProfileDisconnected,
			} {
				for slot := 0; slot < 3; slot++ {
					p := catalog.Profile(state, slot)
					fmt.Printf("  slot %d %-12s  %s\n", slot, state, formatPattern(p))
				}
			}

			fmt.Println("Peripheral link:")
			fmt.Printf("  connected     %s\n", formatPattern(catalog.PeripheralLink(true)))
			fmt.Printf("  disconnected  %s\n", formatPattern(catalog.PeripheralLink(false)))

			fmt.Println("Layers:")
			for i := 0; i <= len(cfg.LayerColors); i++ {
				fmt.Printf("  layer %d  %s\n", i, formatPattern(catalog.Layer(i)))
			}
		},
	}

	cmd.Flags().BoolVar(&peripheral, "peripheral", false, "Resolve the catalog for the peripheral half")

	return cmd
}

func formatPattern(p indicator.Pattern) string {
	switch p.Kind() {
	case "suppressed":
		return "(no indication)"
	case "persistent":
		return fmt.Sprintf("steady %s", p.Color)
	default:
		steps := make([]string, len(p.Sequence))
		for i, d := range p.Sequence {
			steps[i] = d.String()
		}
		return fmt.Sprintf("%s %s x%d", p.Color, strings.Join(steps, "/"), p.Repeats)
	}
}
