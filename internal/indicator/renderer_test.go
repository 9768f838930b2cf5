package indicator

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/smazurov/blinkd/internal/led"
)

// recordingOutput captures every color the renderer sets.
type recordingOutput struct {
	mu     sync.Mutex
	colors []led.RGB
}

func (o *recordingOutput) Set(c led.RGB) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.colors = append(o.colors, c)
	return nil
}

func (o *recordingOutput) Close() error { return nil }

func (o *recordingOutput) last() led.RGB {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.colors) == 0 {
		return led.Off
	}
	return o.colors[len(o.colors)-1]
}

func (o *recordingOutput) history() []led.RGB {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]led.RGB, len(o.colors))
	copy(out, o.colors)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// startRenderer runs a renderer with short timings and returns it with
// its output and a stop function.
func startRenderer(t *testing.T) (*Renderer, *Queue, *recordingOutput, func()) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond

	queue := NewQueue(cfg.QueueCapacity)
	out := &recordingOutput{}
	r := NewRenderer(queue, out, cfg, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()

	return r, queue, out, func() {
		cancel()
		<-done
	}
}

func shortBlink(color led.RGB, repeats int) Pattern {
	return Blink([]time.Duration{time.Millisecond, time.Millisecond}, repeats, color)
}

func TestRenderer_TransientRestoresResting(t *testing.T) {
	r, queue, out, stop := startRenderer(t)
	defer stop()

	if !queue.TryEnqueue(shortBlink(led.Red, 2)) {
		t.Fatal("unexpected drop")
	}
	if !r.WaitComplete(2 * time.Second) {
		t.Fatal("render did not complete")
	}

	// No persistent pattern has run, so the resting color is off.
	if got := out.last(); got != led.Off {
		t.Errorf("output after transient = %s, want off", got)
	}
}

func TestRenderer_PersistentUpdatesResting(t *testing.T) {
	r, queue, out, stop := startRenderer(t)
	defer stop()

	queue.TryEnqueue(Steady(led.Green))
	if !r.WaitComplete(2 * time.Second) {
		t.Fatal("render did not complete")
	}

	if got := out.last(); got != led.Green {
		t.Errorf("output after persistent = %s, want green", got)
	}
}

func TestRenderer_TransientAfterPersistentRestoresColor(t *testing.T) {
	r, queue, out, stop := startRenderer(t)
	defer stop()

	queue.TryEnqueue(Steady(led.Green))
	queue.TryEnqueue(shortBlink(led.Red, 2))

	for i := 0; i < 2; i++ {
		if !r.WaitComplete(2 * time.Second) {
			t.Fatalf("render %d did not complete", i)
		}
	}

	if got := out.last(); got != led.Green {
		t.Errorf("output after persistent green + transient red = %s, want green", got)
	}

	// The transient did blink in its own color in between.
	sawRed := false
	for _, c := range out.history() {
		if c == led.Red {
			sawRed = true
			break
		}
	}
	if !sawRed {
		t.Error("transient red blink never reached the output")
	}
}

func TestRenderer_FIFOOrder(t *testing.T) {
	r, queue, out, stop := startRenderer(t)
	defer stop()

	queue.TryEnqueue(shortBlink(led.Red, 1))
	queue.TryEnqueue(shortBlink(led.Green, 1))
	queue.TryEnqueue(shortBlink(led.Blue, 1))

	for i := 0; i < 3; i++ {
		if !r.WaitComplete(2 * time.Second) {
			t.Fatalf("render %d did not complete", i)
		}
	}

	first := func(want led.RGB) int {
		for i, c := range out.history() {
			if c == want {
				return i
			}
		}
		return -1
	}

	red, green, blue := first(led.Red), first(led.Green), first(led.Blue)
	if red == -1 || green == -1 || blue == -1 {
		t.Fatalf("missing colors in output history: red=%d green=%d blue=%d", red, green, blue)
	}
	if !(red < green && green < blue) {
		t.Errorf("colors rendered out of order: red=%d green=%d blue=%d", red, green, blue)
	}
}

func TestRenderer_SuppressedJobCompletes(t *testing.T) {
	r, queue, out, stop := startRenderer(t)
	defer stop()

	queue.TryEnqueue(Steady(led.Magenta))
	queue.TryEnqueue(Pattern{}) // suppressed: no repeats, no sequence

	for i := 0; i < 2; i++ {
		if !r.WaitComplete(2 * time.Second) {
			t.Fatalf("render %d did not complete", i)
		}
	}

	// The suppressed job still restores the resting color.
	if got := out.last(); got != led.Magenta {
		t.Errorf("output after suppressed job = %s, want magenta", got)
	}
}

func TestRenderer_StopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	queue := NewQueue(cfg.QueueCapacity)
	r := NewRenderer(queue, &recordingOutput{}, cfg, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Run() returned nil after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancellation")
	}
}

func TestRenderer_WaitCompleteTimesOut(t *testing.T) {
	cfg := DefaultConfig()
	r := NewRenderer(NewQueue(1), &recordingOutput{}, cfg, testLogger())

	start := time.Now()
	if r.WaitComplete(20 * time.Millisecond) {
		t.Error("WaitComplete succeeded with no render")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("WaitComplete returned after %v, before the timeout", elapsed)
	}
}
