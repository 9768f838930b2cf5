package sim

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smazurov/blinkd/internal/config"
	"github.com/smazurov/blinkd/internal/events"
)

// Player publishes script steps onto the event bus at their offsets.
type Player struct {
	bus    *events.Bus
	logger *slog.Logger
}

// NewPlayer creates a player for the given bus.
func NewPlayer(bus *events.Bus, logger *slog.Logger) *Player {
	return &Player{bus: bus, logger: logger}
}

// Play runs the timeline once. It returns nil when the last step has
// been published, or ctx.Err() if cancelled mid-run.
func (p *Player) Play(ctx context.Context, script Script) error {
	start := time.Now()

	for _, step := range script.Steps {
		ev, err := step.Event()
		if err != nil {
			// Scripts are validated on load; this only fires when a
			// caller constructs a Script by hand.
			return err
		}

		if wait := step.At() - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		p.logger.Debug("Publishing scripted event", "at_ms", step.AtMs, "kind", step.Kind)
		p.bus.Publish(ev)
	}

	return nil
}

// Runner plays a script file and restarts the timeline whenever the
// file changes on disk.
type Runner struct {
	path   string
	player *Player
	logger *slog.Logger
}

// NewRunner creates a runner for the given script path.
func NewRunner(path string, player *Player, logger *slog.Logger) *Runner {
	return &Runner{path: path, player: player, logger: logger}
}

// Run loads the script and plays it until ctx is cancelled. Looping
// scripts replay from the top; one-shot scripts idle after the last
// step waiting for an edit. Any edit restarts the timeline from zero.
func (r *Runner) Run(ctx context.Context) error {
	script, err := LoadScript(r.path)
	if err != nil {
		return err
	}

	reload := make(chan Script, 1)
	watcher := config.NewConfigWatcher(r.path, LoadScript, r.logger,
		config.WithDebounce[Script](300*time.Millisecond))
	unsub := watcher.OnReload(func(s Script) {
		select {
		case reload <- s:
		default:
			// A pending reload is already queued; the newest edit wins
			// on the next pass.
		}
	})
	defer unsub()

	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	r.logger.Info("Playing event script", "path", r.path, "steps", len(script.Steps), "loop", script.Loop)

	for {
		playCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- r.player.Play(playCtx, script)
		}()

		select {
		case <-ctx.Done():
			cancel()
			<-done
			return ctx.Err()

		case next := <-reload:
			cancel()
			<-done
			script = next
			r.logger.Info("Script changed, restarting timeline", "steps", len(script.Steps), "loop", script.Loop)

		case err := <-done:
			cancel()
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if script.Loop {
				continue
			}
			// Timeline finished; hold until an edit or shutdown.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case next := <-reload:
				script = next
				r.logger.Info("Script changed, restarting timeline", "steps", len(script.Steps), "loop", script.Loop)
			}
		}
	}
}
