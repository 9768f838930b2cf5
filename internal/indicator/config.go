package indicator

import (
	"time"

	"github.com/smazurov/blinkd/internal/led"
)

// Config is the immutable runtime configuration of the indicator
// pipeline. It is resolved once at startup; nothing mutates it after.
type Config struct {
	// QueueCapacity bounds the blink queue; submissions beyond it drop.
	QueueCapacity int

	// Interval is the pause between finished sequences.
	Interval time.Duration

	// Battery thresholds as percentages. A reading at or below Critical
	// is critical, at or below Low is low, anything else is high.
	BatteryHigh     uint8
	BatteryLow      uint8
	BatteryCritical uint8

	// Per-tier repeat counts for the boot battery indication.
	BootRepeatsHigh     int
	BootRepeatsLow      int
	BootRepeatsCritical int

	// LayerColors maps layer index to persistent color; index 0 is off.
	// Layers beyond the table use OverflowColor.
	LayerColors   []led.RGB
	OverflowColor led.RGB

	// Peripheral marks the subordinate half of a split device, which
	// lacks profile and layer visibility.
	Peripheral bool

	// Feature toggles per indication category.
	ShowBatteryOnBoot  bool
	ShowBatteryChanges bool
	ShowProfile        bool
	ShowPeripheral     bool
	ShowLayer          bool

	// Boot sequencing.
	BootDelay         time.Duration
	BatteryRetries    int
	BatteryRetryDelay time.Duration
	CompleteTimeout   time.Duration
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:       6,
		Interval:            500 * time.Millisecond,
		BatteryHigh:         80,
		BatteryLow:          20,
		BatteryCritical:     5,
		BootRepeatsHigh:     1,
		BootRepeatsLow:      2,
		BootRepeatsCritical: 3,
		LayerColors: []led.RGB{
			led.Off, // layer 0: default
			led.Red,
			led.Green,
			led.Blue,
			led.Yellow,
			led.Magenta,
			led.Cyan,
			led.White,
		},
		OverflowColor:      led.White,
		ShowBatteryOnBoot:  true,
		ShowBatteryChanges: true,
		ShowProfile:        true,
		ShowPeripheral:     true,
		ShowLayer:          true,
		BootDelay:          200 * time.Millisecond,
		BatteryRetries:     10,
		BatteryRetryDelay:  100 * time.Millisecond,
		CompleteTimeout:    5 * time.Second,
	}
}
