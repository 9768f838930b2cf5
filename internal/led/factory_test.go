package led

import (
	"testing"
)

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New(Options{Kind: "dmx"}, nil); err == nil {
		t.Error("New() with unknown kind should return error")
	}
}

func TestNew_Noop(t *testing.T) {
	out, err := New(Options{Kind: "noop"}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if _, ok := out.(*noop); !ok {
		t.Errorf("New() = %T, want *noop", out)
	}
}

func TestNew_Console(t *testing.T) {
	out, err := New(Options{Kind: "console"}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if _, ok := out.(*Console); !ok {
		t.Errorf("New() = %T, want *Console", out)
	}
}

func TestSysfsScaling(t *testing.T) {
	s := newSysfs(map[string]string{"red": "does-not-exist"})

	// Missing sysfs node should surface as an error, not a panic.
	if err := s.Set(Red); err == nil {
		t.Error("Set() on missing LED node should return error")
	}
}
