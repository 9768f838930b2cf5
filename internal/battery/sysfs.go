package battery

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysfsPowerSupplyPath = "/sys/class/power_supply"

// Sysfs reads the state of charge from the Linux power supply class.
type Sysfs struct {
	capacityPath string
}

// NewSysfs creates a sensor for the named power supply (e.g. "BAT0").
// An empty name picks the first supply that exposes a capacity file.
func NewSysfs(name string) (*Sysfs, error) {
	if name != "" {
		return &Sysfs{
			capacityPath: filepath.Join(sysfsPowerSupplyPath, name, "capacity"),
		}, nil
	}

	entries, err := os.ReadDir(sysfsPowerSupplyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate power supplies: %w", err)
	}
	for _, entry := range entries {
		path := filepath.Join(sysfsPowerSupplyPath, entry.Name(), "capacity")
		if _, err := os.Stat(path); err == nil {
			return &Sysfs{capacityPath: path}, nil
		}
	}
	return nil, fmt.Errorf("no power supply with a capacity reading under %s", sysfsPowerSupplyPath)
}

// StateOfCharge reads the capacity file. Unreadable or malformed values
// surface as errors; callers treat those like the not-ready sentinel.
func (s *Sysfs) StateOfCharge() (uint8, error) {
	data, err := os.ReadFile(s.capacityPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", s.capacityPath, err)
	}

	level, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed capacity reading %q: %w", strings.TrimSpace(string(data)), err)
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return uint8(level), nil
}
