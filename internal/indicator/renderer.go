package indicator

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/blinkd/internal/led"
	"github.com/smazurov/blinkd/internal/metrics"
)

const (
	// preBlinkSettle is the off-hold before a sequence starts, so
	// back-to-back sequences have a visible edge between them.
	preBlinkSettle = 100 * time.Millisecond

	// repeatGap is the off-pause between repeats of one sequence.
	repeatGap = 200 * time.Millisecond
)

// Renderer consumes the blink queue and drives the output device. It is
// the only goroutine that touches the output and the resting color.
type Renderer struct {
	queue  *Queue
	out    led.Output
	cfg    Config
	logger *slog.Logger
	stats  *metrics.Metrics

	// complete is a single-slot, reusable completion signal. The
	// renderer gives it after every job; a producer that cares takes it
	// with WaitComplete.
	complete chan struct{}

	// resting is read and written only from Run's goroutine.
	resting led.RGB
}

// NewRenderer creates a renderer over the queue and output device.
func NewRenderer(queue *Queue, out led.Output, cfg Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		queue:    queue,
		out:      out,
		cfg:      cfg,
		logger:   logger,
		complete: make(chan struct{}, 1),
	}
}

// SetMetrics attaches pipeline instrumentation. Must be called before Run.
func (r *Renderer) SetMetrics(m *metrics.Metrics) {
	r.stats = m
}

// Run processes patterns until ctx is canceled. It never returns early:
// a failing output device degrades to warnings, not termination.
func (r *Renderer) Run(ctx context.Context) error {
	r.logger.Info("Renderer started")

	for {
		r.stats.SetQueueDepth(r.queue.Len())

		pattern, err := r.queue.Dequeue(ctx)
		if err != nil {
			r.logger.Info("Renderer stopped", "reason", err)
			return err
		}

		r.logger.Debug("Rendering pattern",
			"kind", pattern.Kind(),
			"color", pattern.Color.String(),
			"repeats", pattern.Repeats)

		start := time.Now()
		r.render(ctx, pattern)
		r.stats.ObserveRender(pattern.Kind(), time.Since(start))

		// Completion signal for producers that wait on their own job.
		// Single slot: an un-taken signal from an earlier job is simply
		// still there.
		select {
		case r.complete <- struct{}{}:
		default:
		}

		if !r.sleep(ctx, r.cfg.Interval) {
			r.logger.Info("Renderer stopped", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// WaitComplete blocks until the renderer signals a finished job or the
// timeout elapses. Used by the boot sequence to keep its indications
// strictly ordered; live event producers never wait.
func (r *Renderer) WaitComplete(timeout time.Duration) bool {
	select {
	case <-r.complete:
		return true
	case <-time.After(timeout):
		return false
	}
}

// render executes one pattern's timeline on the output device.
func (r *Renderer) render(ctx context.Context, p Pattern) {
	// Clean edge before anything else.
	r.set(led.Off)
	if !r.sleep(ctx, preBlinkSettle) {
		return
	}

	switch {
	case p.Persistent:
		// Persistent patterns do not blink; the color itself is the
		// indication and becomes the new resting state.
		r.resting = p.Color
		r.set(p.Color)
		return

	case p.Repeats == 0 || len(p.Sequence) == 0:
		// Suppressed job: completes with no visible output.

	default:
		for n := 0; n < p.Repeats; n++ {
			for i, hold := range p.Sequence {
				if i%2 == 0 {
					r.set(p.Color)
				} else {
					r.set(led.Off)
				}
				if !r.sleep(ctx, hold) {
					return
				}
			}
			if n < p.Repeats-1 {
				r.set(led.Off)
				if !r.sleep(ctx, repeatGap) {
					return
				}
			}
		}
	}

	// Transient patterns fall back to whatever steady color was last
	// established.
	r.set(r.resting)
}

// set drives the output, downgrading device failures to warnings.
func (r *Renderer) set(color led.RGB) {
	if err := r.out.Set(color); err != nil {
		r.logger.Warn("Failed to set indicator color", "color", color.String(), "error", err)
	}
}

// sleep waits for d, returning false if ctx was canceled first.
func (r *Renderer) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
