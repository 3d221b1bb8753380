package version

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "1.2.3"
	if Short() != "1.2.3" {
		t.Fatalf("expected 1.2.3, got %s", Short())
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.0.0", Commit: "abc123", BuildTime: "today", GoVersion: "go1.24.0"}
	s := info.String()
	for _, part := range []string{"1.0.0", "abc123", "today", "go1.24.0"} {
		if !strings.Contains(s, part) {
			t.Fatalf("expected %q in %q", part, s)
		}
	}
}
