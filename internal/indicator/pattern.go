package indicator

import (
	"time"

	"github.com/smazurov/blinkd/internal/led"
)

// Pattern describes one render job for the indicator. Sequence holds
// alternating on/off durations starting with on; a Pattern with zero
// Repeats or an empty Sequence completes without visible output.
type Pattern struct {
	Sequence   []time.Duration
	Repeats    int
	Color      led.RGB
	Persistent bool
}

// Kind labels a pattern for logs and metrics.
func (p Pattern) Kind() string {
	switch {
	case p.Persistent:
		return "persistent"
	case p.Repeats == 0 || len(p.Sequence) == 0:
		return "suppressed"
	default:
		return "transient"
	}
}

// Blink builds a transient pattern.
func Blink(sequence []time.Duration, repeats int, color led.RGB) Pattern {
	return Pattern{
		Sequence: sequence,
		Repeats:  repeats,
		Color:    color,
	}
}

// Steady builds a persistent pattern that becomes the new resting color.
func Steady(color led.RGB) Pattern {
	return Pattern{
		Sequence:   stayOnSequence,
		Repeats:    1,
		Color:      color,
		Persistent: true,
	}
}
