package app

import (
	"fmt"
	"strings"
	"time"
)

var (
	// Version is filled by ldflags in release builds.
	Version = "dev"
	// BuildDate is filled by ldflags in release builds.
	BuildDate = ""
)

func BuildVersion() string {
	version := strings.TrimSpace(Version)
	if version == "" {
		return "dev"
	}

	return version
}

func BuildDateYMD() string {
	raw := strings.TrimSpace(BuildDate)
	if raw == "" {
		return ""
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.Format("2006-01-02")
	}

	return raw
}

func BuildVersionWithDate() string {
	version := BuildVersion()
	if buildDate := BuildDateYMD(); buildDate != "" {
		return fmt.Sprintf("%s (%s)", version, buildDate)
	}

	return version
}
