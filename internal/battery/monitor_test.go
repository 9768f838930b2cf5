package battery

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/smazurov/blinkd/internal/events"
)

func TestMonitor_PublishesOnChange(t *testing.T) {
	bus := events.New()
	received := make(chan events.BatteryStateChangedEvent, 10)
	unsub := bus.Subscribe(func(e events.BatteryStateChangedEvent) {
		received <- e
	})
	defer unsub()

	sensor := NewFake(80)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	m := NewMonitor(sensor, bus, 5*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	// Initial reading publishes once.
	select {
	case e := <-received:
		if e.StateOfCharge != 80 {
			t.Errorf("first event = %d, want 80", e.StateOfCharge)
		}
	case <-time.After(time.Second):
		t.Fatal("no event for initial reading")
	}

	// Steady readings stay quiet.
	select {
	case e := <-received:
		t.Fatalf("unexpected event %v with unchanged reading", e)
	case <-time.After(50 * time.Millisecond):
	}

	// A change publishes again.
	sensor.SetLevel(79)
	select {
	case e := <-received:
		if e.StateOfCharge != 79 {
			t.Errorf("change event = %d, want 79", e.StateOfCharge)
		}
	case <-time.After(time.Second):
		t.Fatal("no event for changed reading")
	}
}

func TestFakeSensor(t *testing.T) {
	f := NewFake(42)
	if level, err := f.StateOfCharge(); err != nil || level != 42 {
		t.Errorf("StateOfCharge() = (%d, %v), want (42, nil)", level, err)
	}
	f.SetLevel(7)
	if level, _ := f.StateOfCharge(); level != 7 {
		t.Errorf("StateOfCharge() after SetLevel = %d, want 7", level)
	}
}
