package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}
	return string(body)
}

func TestMetricsExposed(t *testing.T) {
	m := New()
	m.ObserveRender("transient", 40*time.Millisecond)
	m.ObserveRender("persistent", 5*time.Millisecond)
	m.IncDropped()
	m.SetQueueDepth(3)

	body := scrape(t, m)

	for _, want := range []string{
		`blinkd_patterns_rendered_total{kind="transient"} 1`,
		`blinkd_patterns_rendered_total{kind="persistent"} 1`,
		"blinkd_patterns_dropped_total 1",
		"blinkd_queue_depth 3",
		"blinkd_render_duration_seconds_count 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	// Must not panic.
	m.ObserveRender("transient", time.Millisecond)
	m.IncDropped()
	m.SetQueueDepth(1)
}
