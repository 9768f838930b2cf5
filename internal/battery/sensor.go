// Package battery reads the device battery state of charge and turns
// changes into bus events.
package battery

import "sync/atomic"

// Sensor reads the battery state of charge as a percentage. A reading
// of 0 means the sensor has no measurement yet; shortly after power-on
// fuel gauges commonly report 0 until their first conversion finishes.
type Sensor interface {
	StateOfCharge() (uint8, error)
}

// Fake is a settable sensor for tests and the simulator.
type Fake struct {
	level atomic.Uint32
}

// NewFake creates a fake sensor with an initial reading.
func NewFake(level uint8) *Fake {
	f := &Fake{}
	f.level.Store(uint32(level))
	return f
}

// StateOfCharge returns the current fake reading.
func (f *Fake) StateOfCharge() (uint8, error) {
	return uint8(f.level.Load()), nil
}

// SetLevel changes the fake reading.
func (f *Fake) SetLevel(level uint8) {
	f.level.Store(uint32(level))
}
