package indicator

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/blinkd/internal/battery"
	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/led"
	"github.com/smazurov/blinkd/internal/retry"
)

// LinkStatus is the current wireless link state as seen by the
// controlling side.
type LinkStatus struct {
	Slot  int
	State events.ProfileState
}

// Boot plays the one-shot startup indication sequence: battery tier,
// link status, then the current layer's persistent color, in that
// order. Live event mappings stay suppressed until it finishes.
type Boot struct {
	cfg      Config
	catalog  *Catalog
	mapper   *Mapper
	renderer *Renderer
	sensor   battery.Sensor
	logger   *slog.Logger

	// Current-state probes, injected because the boot sequence reports
	// state that predates any event. Nil probes fall back to defaults.
	Link           func() LinkStatus
	PeripheralLink func() bool
	Layer          func() int
}

// NewBoot creates the startup orchestrator.
func NewBoot(cfg Config, catalog *Catalog, mapper *Mapper, renderer *Renderer, sensor battery.Sensor, logger *slog.Logger) *Boot {
	return &Boot{
		cfg:      cfg,
		catalog:  catalog,
		mapper:   mapper,
		renderer: renderer,
		sensor:   sensor,
		logger:   logger,
	}
}

// Run executes the boot sequence once and marks the mapper initialized.
// It degrades rather than fails: an unready sensor falls back to a
// neutral indication and a slow render is abandoned with a warning.
func (b *Boot) Run(ctx context.Context) {
	b.logger.Info("Boot indication sequence started")

	// Let drivers and the renderer goroutine come up first.
	select {
	case <-ctx.Done():
		return
	case <-time.After(b.cfg.BootDelay):
	}

	if b.cfg.ShowBatteryOnBoot {
		b.indicateBattery(ctx)
	} else {
		b.logger.Info("Battery indication is disabled")
	}

	if ctx.Err() != nil {
		return
	}

	b.indicateLink()

	if ctx.Err() != nil {
		return
	}

	b.indicateLayer()

	b.mapper.SetInitialized()
	b.logger.Info("Boot indication sequence finished, live events enabled")
}

// indicateBattery samples the sensor with bounded retries and plays the
// tier indication.
func (b *Boot) indicateBattery(ctx context.Context) {
	level, ok := retry.Poll(ctx, b.cfg.BatteryRetries, b.cfg.BatteryRetryDelay,
		func() uint8 {
			level, err := b.sensor.StateOfCharge()
			if err != nil {
				b.logger.Debug("Battery read failed", "error", err)
				return 0
			}
			return level
		},
		func(level uint8) bool { return level > 0 })

	if !ok {
		b.logger.Warn("Battery level undetermined after retries, using default indication",
			"attempts", b.cfg.BatteryRetries)
	} else {
		b.logger.Info("Boot battery level", "state_of_charge", level, "tier", b.catalog.BatteryTier(level).String())
	}

	if b.mapper.Submit(b.catalog.BatteryBoot(level), "boot battery") {
		b.waitRendered("battery")
	}
}

// indicateLink plays the link indication for the current role.
func (b *Boot) indicateLink() {
	var pattern Pattern
	if b.cfg.Peripheral {
		if !b.cfg.ShowPeripheral {
			b.logger.Info("Link indication is disabled")
			return
		}
		connected := false
		if b.PeripheralLink != nil {
			connected = b.PeripheralLink()
		}
		pattern = b.catalog.PeripheralLink(connected)
	} else {
		if !b.cfg.ShowProfile {
			b.logger.Info("Link indication is disabled")
			return
		}
		status := LinkStatus{State: events.ProfileDisconnected}
		if b.Link != nil {
			status = b.Link()
		}
		pattern = b.catalog.Profile(status.State, status.Slot)
	}

	if b.mapper.Submit(pattern, "boot link") {
		b.waitRendered("link")
	}
}

// indicateLayer establishes the initial resting color: the current
// layer's color on the controlling side, explicit off on a peripheral.
func (b *Boot) indicateLayer() {
	if b.cfg.Peripheral {
		// Peripheral halves have no layer concept; rest dark.
		b.mapper.Submit(Steady(led.Off), "boot layer")
		return
	}
	if !b.cfg.ShowLayer {
		return
	}

	layer := 0
	if b.Layer != nil {
		layer = b.Layer()
	}
	b.mapper.Submit(b.catalog.Layer(layer), "boot layer")
}

// waitRendered blocks until the submitted job finished rendering, with
// a bound: boot must never hang on indicator hardware.
func (b *Boot) waitRendered(what string) {
	if !b.renderer.WaitComplete(b.cfg.CompleteTimeout) {
		b.logger.Warn("Timed out waiting for indication to render", "what", what, "timeout", b.cfg.CompleteTimeout)
	}
}
