package led

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNoopOutput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	out := newNoop(logger)

	// Should return no errors
	if err := out.Set(Red); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf strings.Builder
	out := NewConsole(&buf)

	if err := out.Set(RGB{255, 0, 0}); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "48;2;255;0;0") {
		t.Errorf("Set() output %q missing truecolor escape", got)
	}
	if !strings.Contains(got, "#ff0000") {
		t.Errorf("Set() output %q missing hex value", got)
	}
}

func TestRGBString(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		want  string
	}{
		{"off", Off, "#000000"},
		{"red", Red, "#ff0000"},
		{"yellow", Yellow, "#ffff00"},
		{"mixed", RGB{18, 52, 86}, "#123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGBIsOff(t *testing.T) {
	if !Off.IsOff() {
		t.Error("Off.IsOff() = false, want true")
	}
	if Blue.IsOff() {
		t.Error("Blue.IsOff() = true, want false")
	}
}
