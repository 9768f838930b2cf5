package led

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Options selects and configures the output hardware path.
type Options struct {
	Kind string // auto, noop, console, sysfs, serial, gpio

	// serial
	SerialDevice string
	SerialBaud   int

	// gpio
	RedPin   string
	GreenPin string
	BluePin  string
}

// New creates an indicator output for the requested kind. Kind "auto"
// detects the board and falls back to the no-op output when no known
// indicator hardware is present.
func New(opts Options, logger *slog.Logger) (Output, error) {
	switch opts.Kind {
	case "", "auto":
		return autodetect(logger), nil

	case "noop":
		return newNoop(logger), nil

	case "console":
		return NewConsole(os.Stdout), nil

	case "sysfs":
		return newSysfs(map[string]string{
			"red":   "rgb:red",
			"green": "rgb:green",
			"blue":  "rgb:blue",
		}), nil

	case "serial":
		return NewSerial(opts.SerialDevice, opts.SerialBaud)

	case "gpio":
		return NewGPIO(opts.RedPin, opts.GreenPin, opts.BluePin)

	default:
		return nil, fmt.Errorf("unknown output kind %q", opts.Kind)
	}
}

// autodetect picks a sysfs mapping based on the board model.
func autodetect(logger *slog.Logger) Output {
	boardModel := detectBoard()

	if logger != nil {
		logger.Info("Detecting board for indicator control", "board_model", boardModel)
	}

	switch {
	case strings.Contains(boardModel, "Raspberry Pi"):
		if logger != nil {
			logger.Info("Detected Raspberry Pi, using sysfs indicator output")
		}
		return newSysfs(map[string]string{
			"red":   "rgb:red",
			"green": "rgb:green",
			"blue":  "rgb:blue",
		})

	case strings.Contains(boardModel, "Orange Pi"):
		if logger != nil {
			logger.Info("Detected Orange Pi, using sysfs indicator output")
		}
		return newSysfs(map[string]string{
			"red":   "red:status",
			"green": "green:status",
			"blue":  "blue:status",
		})

	default:
		if logger != nil {
			logger.Info("No indicator support detected, using no-op output", "board_model", boardModel)
		}
		return newNoop(logger)
	}
}

// detectBoard reads the device tree model to identify the board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}

	// Device tree model contains null bytes, trim them
	model := strings.TrimRight(string(data), "\x00")
	return model
}
