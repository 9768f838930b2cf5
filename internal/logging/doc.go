// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//   - Always keeps a ring buffer of recent entries for offline inspection
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"renderer": "debug",  // Per-module overrides
//			"battery":  "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("renderer")
//	logger.Info("Renderer started")
//	logger.Debug("Rendering pattern", "color", "#0000ff")
//	logger.Warn("Blink queue full, dropping pattern")
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t blinkd              # All blinkd logs
//	journalctl -t blinkd -f           # Follow live
//	journalctl -t blinkd -p err       # Errors only
//
// Filter by structured fields:
//
//	journalctl -t blinkd MODULE=renderer
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	renderer = "debug"
//	mapper = "warn"
package logging
