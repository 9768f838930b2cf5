package events

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan BatteryStateChangedEvent, 1)

	unsub := bus.Subscribe(func(e BatteryStateChangedEvent) {
		received <- e
	})
	defer unsub()

	event := BatteryStateChangedEvent{StateOfCharge: 42}
	bus.Publish(event)

	got := <-received
	if got.StateOfCharge != event.StateOfCharge {
		t.Errorf("Expected state_of_charge %d, got %d", event.StateOfCharge, got.StateOfCharge)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan ProfileChangedEvent, 1)
	received2 := make(chan ProfileChangedEvent, 1)

	unsub1 := bus.Subscribe(func(e ProfileChangedEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e ProfileChangedEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(ProfileChangedEvent{Slot: 1, State: ProfileConnected})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan LayerStateChangedEvent, 1)

	unsub := bus.Subscribe(func(e LayerStateChangedEvent) {
		received <- e
	})
	unsub()

	bus.Publish(LayerStateChangedEvent{Layer: 3})

	select {
	case <-received:
		t.Error("Received event after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_UnknownHandler(t *testing.T) {
	bus := New()

	// Unknown handler types get a no-op unsubscribe, not a panic.
	unsub := bus.Subscribe(func(s string) {})
	unsub()
}

func TestBus_DistinctTypes(t *testing.T) {
	bus := New()
	received := make(chan PeripheralStatusChangedEvent, 1)

	unsub := bus.Subscribe(func(e PeripheralStatusChangedEvent) {
		received <- e
	})
	defer unsub()

	// Events of other types must not reach this handler.
	bus.Publish(LayerStateChangedEvent{Layer: 1})
	bus.Publish(PeripheralStatusChangedEvent{Connected: true})

	got := <-received
	if !got.Connected {
		t.Errorf("Expected connected=true, got %v", got.Connected)
	}
}
