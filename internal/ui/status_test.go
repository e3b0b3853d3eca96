package ui

import (
	"strings"
	"testing"

	"walletgo/internal/connect"
	"walletgo/internal/providers"
)

func TestFormatConnState(t *testing.T) {
	tests := []struct {
		name  string
		state connect.State
		want  string
	}{
		{name: "inactive", state: connect.Inactive(), want: "Connection: inactive"},
		{name: "activating injected", state: connect.Activating(providers.Injected), want: "Connection: activating via injected"},
		{name: "active binance", state: connect.Active(providers.BinanceChain), want: "Connection: active via binance_chain"},
		{name: "rejected", state: connect.RejectedByUser(providers.Injected), want: "Connection: rejected_by_user via injected"},
	}

	for _, tc := range tests {
		if got := formatConnState(tc.state); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatWindowTitleContainsPhase(t *testing.T) {
	got := formatWindowTitle(connect.Active(providers.Injected))
	if !strings.HasPrefix(got, "walletgo ") {
		t.Fatalf("expected title to start with app name, got %q", got)
	}
	if !strings.HasSuffix(got, "- active") {
		t.Fatalf("expected title to end with phase, got %q", got)
	}
}
