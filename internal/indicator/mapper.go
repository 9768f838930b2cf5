package indicator

import (
	"log/slog"
	"sync/atomic"

	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/metrics"
)

// Mapper subscribes to domain events and translates them into blink
// patterns. All live mappings are held back until the boot sequence
// marks the system initialized, so boot indications play undisturbed.
type Mapper struct {
	catalog *Catalog
	queue   *Queue
	bus     *events.Bus
	cfg     Config
	logger  *slog.Logger
	stats   *metrics.Metrics

	initialized atomic.Bool
	unsubs      []func()
}

// NewMapper creates a mapper over the catalog and queue.
func NewMapper(catalog *Catalog, queue *Queue, bus *events.Bus, cfg Config, logger *slog.Logger) *Mapper {
	return &Mapper{
		catalog: catalog,
		queue:   queue,
		bus:     bus,
		cfg:     cfg,
		logger:  logger,
	}
}

// SetMetrics attaches pipeline instrumentation. Must be called before Start.
func (m *Mapper) SetMetrics(stats *metrics.Metrics) {
	m.stats = stats
}

// Start subscribes to the event bus.
func (m *Mapper) Start() {
	m.unsubs = append(m.unsubs,
		m.bus.Subscribe(func(e events.BatteryStateChangedEvent) {
			m.handleBattery(e)
		}),
		m.bus.Subscribe(func(e events.ProfileChangedEvent) {
			m.handleProfile(e)
		}),
		m.bus.Subscribe(func(e events.PeripheralStatusChangedEvent) {
			m.handlePeripheral(e)
		}),
		m.bus.Subscribe(func(e events.LayerStateChangedEvent) {
			m.handleLayer(e)
		}),
	)
	m.logger.Info("Event mapper started")
}

// Stop unsubscribes from the event bus.
func (m *Mapper) Stop() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	m.logger.Info("Event mapper stopped")
}

// SetInitialized opens the gate for live event mappings. Called once by
// the boot sequence.
func (m *Mapper) SetInitialized() {
	m.initialized.Store(true)
}

// Initialized reports whether live events are being mapped.
func (m *Mapper) Initialized() bool {
	return m.initialized.Load()
}

// handleBattery indicates critical readings at state changes. High and
// low tiers are only shown at boot; indicating every discharge step
// would flood the queue for no operator value.
func (m *Mapper) handleBattery(e events.BatteryStateChangedEvent) {
	if !m.initialized.Load() || !m.cfg.ShowBatteryChanges {
		return
	}

	if e.StateOfCharge > 0 && e.StateOfCharge <= m.cfg.BatteryCritical {
		m.logger.Info("Battery critical, blinking", "state_of_charge", e.StateOfCharge)
		m.Submit(m.catalog.BatteryCritical(), "battery critical")
	}
}

// handleProfile indicates the active profile's state on the controlling
// side; repeat count identifies the slot.
func (m *Mapper) handleProfile(e events.ProfileChangedEvent) {
	if !m.initialized.Load() || !m.cfg.ShowProfile || m.cfg.Peripheral {
		return
	}

	m.logger.Info("Profile changed", "slot", e.Slot, "state", e.State)
	m.Submit(m.catalog.Profile(e.State, e.Slot), "profile change")
}

// handlePeripheral indicates the simplified link state on the
// subordinate half.
func (m *Mapper) handlePeripheral(e events.PeripheralStatusChangedEvent) {
	if !m.initialized.Load() || !m.cfg.ShowPeripheral || !m.cfg.Peripheral {
		return
	}

	m.logger.Info("Peripheral link changed", "connected", e.Connected)
	m.Submit(m.catalog.PeripheralLink(e.Connected), "peripheral link change")
}

// handleLayer sets the layer's persistent color on the controlling side.
func (m *Mapper) handleLayer(e events.LayerStateChangedEvent) {
	if !m.initialized.Load() || !m.cfg.ShowLayer || m.cfg.Peripheral {
		return
	}

	m.logger.Info("Layer changed", "layer", e.Layer)
	m.Submit(m.catalog.Layer(e.Layer), "layer change")
}

// Submit enqueues a pattern without blocking. Drops are best-effort
// losses, logged but never fatal.
func (m *Mapper) Submit(p Pattern, what string) bool {
	if !m.queue.TryEnqueue(p) {
		m.stats.IncDropped()
		m.logger.Warn("Blink queue full, dropping pattern", "what", what, "kind", p.Kind())
		return false
	}
	m.stats.SetQueueDepth(m.queue.Len())
	return true
}
