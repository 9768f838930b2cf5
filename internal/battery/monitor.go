package battery

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/blinkd/internal/events"
)

// Monitor polls a sensor and publishes a BatteryStateChangedEvent
// whenever the reading changes. It is the daemon-mode stand-in for the
// firmware's battery event source.
type Monitor struct {
	sensor   Sensor
	bus      *events.Bus
	interval time.Duration
	logger   *slog.Logger
}

// NewMonitor creates a monitor polling the sensor at the given interval.
func NewMonitor(sensor Sensor, bus *events.Bus, interval time.Duration, logger *slog.Logger) *Monitor {
	return &Monitor{
		sensor:   sensor,
		bus:      bus,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until ctx is canceled. Read errors are logged and skipped;
// a flaky sensor must not take the monitor down.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("Battery monitor started", "interval", m.interval)

	var last uint8
	haveLast := false

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Battery monitor stopped")
			return ctx.Err()

		case <-ticker.C:
			level, err := m.sensor.StateOfCharge()
			if err != nil {
				m.logger.Warn("Failed to read battery", "error", err)
				continue
			}
			if haveLast && level == last {
				continue
			}
			last = level
			haveLast = true

			m.logger.Debug("Battery state changed", "state_of_charge", level)
			m.bus.Publish(events.BatteryStateChangedEvent{StateOfCharge: level})
		}
	}
}
