package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// onThreshold is the channel value at or above which a binary GPIO line
// is driven high. Rendering is on/off only, so mid-range values only
// occur for mixed colors like yellow (255,255,0).
const onThreshold = 128

// GPIO implements Output with three binary GPIO lines driving a common
// cathode RGB LED.
type GPIO struct {
	red, green, blue gpio.PinIO
}

// NewGPIO initializes the periph host and claims the three named pins.
func NewGPIO(redPin, greenPin, bluePin string) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	g := &GPIO{}
	for _, p := range []struct {
		name string
		into *gpio.PinIO
	}{
		{redPin, &g.red},
		{greenPin, &g.green},
		{bluePin, &g.blue},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return nil, fmt.Errorf("GPIO pin %q not found", p.name)
		}
		if err := pin.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("failed to configure pin %q: %w", p.name, err)
		}
		*p.into = pin
	}
	return g, nil
}

// Set drives each line high when its channel is at or above the threshold.
func (g *GPIO) Set(color RGB) error {
	for _, ch := range []struct {
		pin   gpio.PinIO
		value uint8
	}{
		{g.red, color.R},
		{g.green, color.G},
		{g.blue, color.B},
	} {
		if err := ch.pin.Out(gpio.Level(ch.value >= onThreshold)); err != nil {
			return fmt.Errorf("failed to drive pin %s: %w", ch.pin.Name(), err)
		}
	}
	return nil
}

// Close turns all lines off.
func (g *GPIO) Close() error {
	return g.Set(Off)
}
