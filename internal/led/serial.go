package led

import (
	"fmt"

	"go.bug.st/serial"
)

// Serial implements Output by sending color frames to a microcontroller
// bridge that drives a WS2812/SK6812 pixel. The wire format is a 5-byte
// frame: 'C', R, G, B, XOR checksum of the payload. The bridge applies
// the frame immediately; there is no acknowledgement.
type Serial struct {
	port serial.Port
}

// NewSerial opens the serial device and returns an output bound to it.
func NewSerial(device string, baud int) (*Serial, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}
	return &Serial{port: port}, nil
}

// Set writes one color frame to the bridge.
func (s *Serial) Set(color RGB) error {
	frame := [5]byte{'C', color.R, color.G, color.B, 0}
	frame[4] = frame[1] ^ frame[2] ^ frame[3]

	if _, err := s.port.Write(frame[:]); err != nil {
		return fmt.Errorf("failed to write color frame: %w", err)
	}
	return nil
}

// Close darkens the indicator and closes the port.
func (s *Serial) Close() error {
	// Best effort; the port may already be gone on unplug.
	_ = s.Set(Off)
	return s.port.Close()
}
