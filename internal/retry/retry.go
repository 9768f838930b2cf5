// Package retry provides a bounded polling helper for sensors that may
// not be ready immediately after boot.
package retry

import (
	"context"
	"time"
)

// Poll calls read until acceptable returns true for its result, up to
// maxAttempts reads with delay between them. It returns the last read
// value and whether it was accepted. The first read happens immediately;
// context cancellation stops the loop early.
func Poll[T any](ctx context.Context, maxAttempts int, delay time.Duration, read func() T, acceptable func(T) bool) (T, bool) {
	var value T
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return value, false
			}
		}

		value = read()
		if acceptable(value) {
			return value, true
		}
	}
	return value, false
}
