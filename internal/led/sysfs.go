package led

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysfsLEDPath = "/sys/class/leds"

// sysfs implements Output using the Linux sysfs LED interface with one
// LED class device per color channel (e.g. "rgb:red", "rgb:green",
// "rgb:blue" on boards that expose a tricolor indicator).
type sysfs struct {
	channels map[string]string // channel ("red"/"green"/"blue") -> sysfs name
	maxima   map[string]int    // channel -> max_brightness
}

// newSysfs creates a sysfs output with board-specific channel mappings.
func newSysfs(channels map[string]string) *sysfs {
	s := &sysfs{
		channels: channels,
		maxima:   make(map[string]int, len(channels)),
	}
	for channel, name := range channels {
		s.maxima[channel] = readMaxBrightness(name)
	}
	return s
}

// Set writes each channel's scaled brightness.
func (s *sysfs) Set(color RGB) error {
	values := map[string]uint8{
		"red":   color.R,
		"green": color.G,
		"blue":  color.B,
	}

	for channel, name := range s.channels {
		ledPath := filepath.Join(sysfsLEDPath, name)
		if _, err := os.Stat(ledPath); os.IsNotExist(err) {
			return fmt.Errorf("LED channel %q not found at %s", channel, ledPath)
		}

		// Scale 0-255 into the device's brightness range. With binary
		// on/off rendering this degenerates to 0 or max.
		max := s.maxima[channel]
		if max <= 0 {
			max = 255
		}
		scaled := int(values[channel]) * max / 255

		brightnessPath := filepath.Join(ledPath, "brightness")
		if err := os.WriteFile(brightnessPath, []byte(strconv.Itoa(scaled)), 0644); err != nil {
			return fmt.Errorf("failed to set %s brightness: %w", channel, err)
		}
	}
	return nil
}

// Close turns the indicator off.
func (s *sysfs) Close() error {
	return s.Set(Off)
}

// readMaxBrightness reads the channel's max_brightness, defaulting to 255.
func readMaxBrightness(name string) int {
	data, err := os.ReadFile(filepath.Join(sysfsLEDPath, name, "max_brightness"))
	if err != nil {
		return 255
	}
	max, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || max <= 0 {
		return 255
	}
	return max
}
