package led

import "log/slog"

// noop implements Output as a no-op for systems without indicator hardware
type noop struct {
	logger *slog.Logger
}

// newNoop creates a new no-op indicator output
func newNoop(logger *slog.Logger) *noop {
	return &noop{
		logger: logger,
	}
}

// Set logs the request but performs no actual indicator control
func (n *noop) Set(color RGB) error {
	if n.logger != nil {
		n.logger.Debug("Indicator control not available (no-op)", "color", color.String())
	}
	return nil
}

// Close is a no-op
func (n *noop) Close() error {
	return nil
}
