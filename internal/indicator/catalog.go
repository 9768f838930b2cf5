package indicator

import (
	"time"

	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/led"
)

// Blink cadences, on/off alternating starting with on.
var (
	batteryHighSequence     = []time.Duration{800 * time.Millisecond, 200 * time.Millisecond}
	batteryLowSequence      = []time.Duration{400 * time.Millisecond, 200 * time.Millisecond}
	batteryCriticalSequence = []time.Duration{40 * time.Millisecond, 40 * time.Millisecond}

	profileConnectedSequence    = []time.Duration{800 * time.Millisecond, 200 * time.Millisecond}
	profileOpenSequence         = []time.Duration{400 * time.Millisecond, 200 * time.Millisecond}
	profileDisconnectedSequence = []time.Duration{300 * time.Millisecond, 200 * time.Millisecond}

	// stayOnSequence is the nominal timeline of persistent patterns;
	// the renderer holds persistent colors instead of stepping it.
	stayOnSequence = []time.Duration{10 * time.Millisecond}
)

// peripheralDisconnectedRepeats makes a dropped peripheral link hard to
// miss, since the peripheral half has no other way to signal trouble.
const peripheralDisconnectedRepeats = 10

// Tier is a battery severity bucket.
type Tier int

// Battery tiers.
const (
	TierHigh Tier = iota
	TierLow
	TierCritical
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierLow:
		return "low"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Catalog maps semantic device states to blink patterns. All lookups
// are total: every input yields a defined pattern.
type Catalog struct {
	cfg Config
}

// NewCatalog creates a catalog over the given configuration.
func NewCatalog(cfg Config) *Catalog {
	return &Catalog{cfg: cfg}
}

// BatteryTier buckets a state of charge. Thresholds belong to the more
// severe tier: a reading equal to the critical threshold is critical.
func (c *Catalog) BatteryTier(level uint8) Tier {
	switch {
	case level <= c.cfg.BatteryCritical:
		return TierCritical
	case level <= c.cfg.BatteryLow:
		return TierLow
	default:
		return TierHigh
	}
}

// BatteryBoot maps a boot-time battery reading to its indication.
// Level 0 is the sensor's not-ready sentinel and maps to a neutral
// green fallback. Readings between the low and high thresholds return
// a suppressed pattern: the job completes with no visible output.
func (c *Catalog) BatteryBoot(level uint8) Pattern {
	if level == 0 {
		return Blink(batteryHighSequence, 1, led.Green)
	}

	switch c.BatteryTier(level) {
	case TierCritical:
		return Blink(batteryCriticalSequence, c.cfg.BootRepeatsCritical, led.Red)
	case TierLow:
		return Blink(batteryLowSequence, c.cfg.BootRepeatsLow, led.Yellow)
	default:
		if level < c.cfg.BatteryHigh {
			// Quiet band between low and high: nothing worth showing.
			return Pattern{}
		}
		return Blink(batteryHighSequence, c.cfg.BootRepeatsHigh, led.Green)
	}
}

// BatteryCritical is the transient indication for a critical reading
// observed at a state change.
func (c *Catalog) BatteryCritical() Pattern {
	return Blink(batteryCriticalSequence, 1, led.Red)
}

// Profile maps a wireless profile state to its indication. The repeat
// count is slot+1 so the operator can count which profile is active.
// Unknown states use the disconnected cadence.
func (c *Catalog) Profile(state events.ProfileState, slot int) Pattern {
	if slot < 0 {
		slot = 0
	}
	repeats := slot + 1

	switch state {
	case events.ProfileConnected:
		return Blink(profileConnectedSequence, repeats, led.Blue)
	case events.ProfileOpen:
		return Blink(profileOpenSequence, repeats, led.Yellow)
	default:
		return Blink(profileDisconnectedSequence, repeats, led.Red)
	}
}

// PeripheralLink is the simplified binary mapping used on the
// subordinate half, which cannot see profile details.
func (c *Catalog) PeripheralLink(connected bool) Pattern {
	if connected {
		return Blink(profileConnectedSequence, 1, led.Blue)
	}
	return Blink(profileDisconnectedSequence, peripheralDisconnectedRepeats, led.Red)
}

// Layer maps a layer index to its persistent color. Indices beyond the
// color table use the overflow color; negative indices clamp to zero.
func (c *Catalog) Layer(index int) Pattern {
	if index < 0 {
		index = 0
	}
	if index >= len(c.cfg.LayerColors) {
		return Steady(c.cfg.OverflowColor)
	}
	return Steady(c.cfg.LayerColors[index])
}
