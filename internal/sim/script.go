// Package sim plays scripted event timelines into the event bus so the
// indicator pipeline can be exercised without real hardware.
package sim

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/blinkd/internal/events"
)

// Step is one scripted event with an offset from timeline start.
type Step struct {
	AtMs int64  `toml:"at_ms"`
	Kind string `toml:"kind"`

	// Payload fields; which ones matter depends on Kind.
	Level     uint8  `toml:"level"`     // battery
	Slot      int    `toml:"slot"`      // profile
	State     string `toml:"state"`     // profile: connected|open|disconnected
	Connected bool   `toml:"connected"` // peripheral
	Layer     int    `toml:"layer"`     // layer
}

// Script is a timeline of steps. Steps play in file order; offsets are
// absolute from timeline start, not deltas.
type Script struct {
	Loop  bool   `toml:"loop"`
	Steps []Step `toml:"step"`
}

// At returns the step's offset from timeline start.
func (s Step) At() time.Duration {
	return time.Duration(s.AtMs) * time.Millisecond
}

// Event converts the step into a bus event.
func (s Step) Event() (events.Event, error) {
	switch s.Kind {
	case "battery":
		if s.Level > 100 {
			return nil, fmt.Errorf("step at %dms: battery level %d out of range", s.AtMs, s.Level)
		}
		return events.BatteryStateChangedEvent{StateOfCharge: s.Level}, nil
	case "profile":
		state := events.ProfileState(s.State)
		switch state {
		case events.ProfileConnected, events.ProfileOpen, events.ProfileDisconnected:
		default:
			return nil, fmt.Errorf("step at %dms: unknown profile state %q", s.AtMs, s.State)
		}
		if s.Slot < 0 {
			return nil, fmt.Errorf("step at %dms: negative profile slot %d", s.AtMs, s.Slot)
		}
		return events.ProfileChangedEvent{Slot: s.Slot, State: state}, nil
	case "peripheral":
		return events.PeripheralStatusChangedEvent{Connected: s.Connected}, nil
	case "layer":
		if s.Layer < 0 {
			return nil, fmt.Errorf("step at %dms: negative layer %d", s.AtMs, s.Layer)
		}
		return events.LayerStateChangedEvent{Layer: s.Layer}, nil
	default:
		return nil, fmt.Errorf("step at %dms: unknown kind %q", s.AtMs, s.Kind)
	}
}

// LoadScript reads and validates a timeline script from a TOML file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}

	var script Script
	if err := toml.Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}

	var prev int64
	for _, step := range script.Steps {
		if _, err := step.Event(); err != nil {
			return Script{}, err
		}
		if step.AtMs < prev {
			return Script{}, fmt.Errorf("step at %dms: offsets must not decrease", step.AtMs)
		}
		prev = step.AtMs
	}

	return script, nil
}
