package app

import "testing"

func TestBuildVersionFallsBackToDev(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	Version = "  "
	if got := BuildVersion(); got != "dev" {
		t.Fatalf("expected dev fallback, got %q", got)
	}

	Version = "v1.2.3"
	if got := BuildVersion(); got != "v1.2.3" {
		t.Fatalf("expected version to pass through, got %q", got)
	}
}

func TestBuildDateYMD(t *testing.T) {
	origDate := BuildDate
	t.Cleanup(func() { BuildDate = origDate })

	BuildDate = ""
	if got := BuildDateYMD(); got != "" {
		t.Fatalf("expected empty date, got %q", got)
	}

	BuildDate = "2026-08-29T10:15:00Z"
	if got := BuildDateYMD(); got != "2026-08-29" {
		t.Fatalf("expected RFC3339 date to be shortened, got %q", got)
	}

	BuildDate = "yesterday"
	if got := BuildDateYMD(); got != "yesterday" {
		t.Fatalf("expected unparseable date to pass through, got %q", got)
	}
}

func TestBuildVersionWithDate(t *testing.T) {
	origVersion, origDate := Version, BuildDate
	t.Cleanup(func() {
		Version = origVersion
		BuildDate = origDate
	})

	Version = "v2.0.0"
	BuildDate = "2026-08-29T10:15:00Z"
	if got := BuildVersionWithDate(); got != "v2.0.0 (2026-08-29)" {
		t.Fatalf("unexpected combined version: %q", got)
	}

	BuildDate = ""
	if got := BuildVersionWithDate(); got != "v2.0.0" {
		t.Fatalf("expected version without date, got %q", got)
	}
}
