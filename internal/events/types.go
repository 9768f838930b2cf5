package events

// Event type constants for kelindar/event.
const (
	TypeBatteryStateChanged uint32 = iota + 1
	TypeProfileChanged
	TypePeripheralStatusChanged
	TypeLayerStateChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ProfileState is the connection state of a wireless profile slot.
type ProfileState string

// Profile states.
const (
	ProfileConnected    ProfileState = "connected"    // bonded and linked
	ProfileOpen         ProfileState = "open"         // advertising, not bonded
	ProfileDisconnected ProfileState = "disconnected" // bonded but not linked
)

// BatteryStateChangedEvent carries a new battery state of charge reading.
// StateOfCharge is a percentage; 0 means the sensor has no reading yet.
type BatteryStateChangedEvent struct {
	StateOfCharge uint8 `json:"state_of_charge"`
}

// Type returns the event type identifier for BatteryStateChangedEvent.
func (e BatteryStateChangedEvent) Type() uint32 { return TypeBatteryStateChanged }

// ProfileChangedEvent reports a state change of the active wireless
// profile on the controlling side. Slot is the 0-based profile index.
type ProfileChangedEvent struct {
	Slot  int          `json:"slot"`
	State ProfileState `json:"state"`
}

// Type returns the event type identifier for ProfileChangedEvent.
func (e ProfileChangedEvent) Type() uint32 { return TypeProfileChanged }

// PeripheralStatusChangedEvent reports link status on a peripheral half,
// which only knows whether it is connected to its central.
type PeripheralStatusChangedEvent struct {
	Connected bool `json:"connected"`
}

// Type returns the event type identifier for PeripheralStatusChangedEvent.
func (e PeripheralStatusChangedEvent) Type() uint32 { return TypePeripheralStatusChanged }

// LayerStateChangedEvent reports the highest active keymap layer.
type LayerStateChangedEvent struct {
	Layer int `json:"layer"`
}

// Type returns the event type identifier for LayerStateChangedEvent.
func (e LayerStateChangedEvent) Type() uint32 { return TypeLayerStateChanged }
