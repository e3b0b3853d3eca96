package connect

import (
	"errors"
	"testing"

	"walletgo/internal/providers"
)

func TestReduceStartActivatingFromAnyState(t *testing.T) {
	states := []State{
		Inactive(),
		Activating(providers.Injected),
		Active(providers.Injected),
		RejectedByUser(providers.BinanceChain),
		AlreadyPending(providers.Injected),
		Failed(providers.BinanceChain),
	}

	for _, prev := range states {
		next, ok := Reduce(prev, StartActivating(providers.BinanceChain))
		if !ok {
			t.Fatalf("expected StartActivating to apply from %s", prev)
		}
		if next.Phase != PhaseActivating {
			t.Fatalf("expected activating phase from %s, got %s", prev, next.Phase)
		}
		if next.Connector != providers.BinanceChain {
			t.Fatalf("expected connector from action, got %v", next.Connector)
		}
	}
}

func TestReduceFinishActivatingKeepsConnector(t *testing.T) {
	next, ok := Reduce(Activating(providers.BinanceChain), FinishActivating())
	if !ok {
		t.Fatalf("expected FinishActivating to apply while activating")
	}
	if next.Phase != PhaseActive {
		t.Fatalf("expected active phase, got %s", next.Phase)
	}
	if next.Connector != providers.BinanceChain {
		t.Fatalf("expected binance connector to be kept, got %v", next.Connector)
	}
}

func TestReduceFinishActivatingFromInactiveDefaultsToInjected(t *testing.T) {
	next, ok := Reduce(Inactive(), FinishActivating())
	if !ok {
		t.Fatalf("expected FinishActivating to apply from inactive")
	}
	if next.Phase != PhaseActive {
		t.Fatalf("expected active phase, got %s", next.Phase)
	}
	if next.Connector != providers.Injected {
		t.Fatalf("expected injected connector fallback, got %v", next.Connector)
	}
}

func TestReduceFailClassifiesErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Phase
	}{
		{name: "user rejection", err: errors.New("User Rejected the request"), want: PhaseRejectedByUser},
		{name: "pending request", err: errors.New("request of type wallet_requestPermissions already pending"), want: PhaseAlreadyPending},
		{name: "generic failure", err: errors.New("underlying network changed"), want: PhaseFailed},
		{name: "nil error", err: nil, want: PhaseFailed},
	}

	for _, tc := range tests {
		next, ok := Reduce(Activating(providers.Injected), Fail(tc.err))
		if !ok {
			t.Fatalf("%s: expected Fail to apply while activating", tc.name)
		}
		if next.Phase != tc.want {
			t.Fatalf("%s: expected phase %s, got %s", tc.name, tc.want, next.Phase)
		}
		if next.Connector != providers.Injected {
			t.Fatalf("%s: expected connector to be preserved, got %v", tc.name, next.Connector)
		}
	}
}

func TestReduceFailPreservesConnectorFromEveryNonIdleState(t *testing.T) {
	states := []State{
		Activating(providers.BinanceChain),
		Active(providers.BinanceChain),
		RejectedByUser(providers.BinanceChain),
		AlreadyPending(providers.BinanceChain),
		Failed(providers.BinanceChain),
	}

	for _, prev := range states {
		next, ok := Reduce(prev, Fail(errors.New("Unknown failure")))
		if !ok {
			t.Fatalf("expected Fail to apply from %s", prev)
		}
		if next.Phase != PhaseFailed {
			t.Fatalf("expected failed phase from %s, got %s", prev, next.Phase)
		}
		if next.Connector != providers.BinanceChain {
			t.Fatalf("expected connector to survive Fail from %s, got %v", prev, next.Connector)
		}
	}
}

func TestReduceFailIsIgnoredWhenInactive(t *testing.T) {
	prev := Inactive()
	next, ok := Reduce(prev, Fail(errors.New("stale error")))
	if ok {
		t.Fatalf("expected Fail to be ignored while inactive")
	}
	if next != prev {
		t.Fatalf("expected state to be unchanged, got %s", next)
	}
}

func TestReduceRetryRestartsWithStoredConnector(t *testing.T) {
	states := []State{
		RejectedByUser(providers.BinanceChain),
		AlreadyPending(providers.BinanceChain),
		Failed(providers.BinanceChain),
		Active(providers.BinanceChain),
	}

	for _, prev := range states {
		next, ok := Reduce(prev, Retry())
		if !ok {
			t.Fatalf("expected Retry to apply from %s", prev)
		}
		if next.Phase != PhaseActivating {
			t.Fatalf("expected activating phase from %s, got %s", prev, next.Phase)
		}
		if next.Connector != providers.BinanceChain {
			t.Fatalf("expected stored connector to drive the retry, got %v", next.Connector)
		}
	}
}

func TestReduceRetryIsIgnoredWhenInactive(t *testing.T) {
	prev := Inactive()
	next, ok := Reduce(prev, Retry())
	if ok {
		t.Fatalf("expected Retry to be ignored while inactive")
	}
	if next != prev {
		t.Fatalf("expected state to be unchanged, got %s", next)
	}
}

func TestReduceCancelAndDeactivateResetFromAnyState(t *testing.T) {
	states := []State{
		Inactive(),
		Activating(providers.Injected),
		Active(providers.BinanceChain),
		RejectedByUser(providers.Injected),
		AlreadyPending(providers.BinanceChain),
		Failed(providers.Injected),
	}

	for _, prev := range states {
		for _, action := range []Action{Cancel(), Deactivate()} {
			next, ok := Reduce(prev, action)
			if !ok {
				t.Fatalf("expected %s to apply from %s", action, prev)
			}
			if !next.IsInactive() {
				t.Fatalf("expected inactive after %s from %s, got %s", action, prev, next)
			}
			if next.Connector != nil {
				t.Fatalf("expected connector to be cleared, got %v", next.Connector)
			}
		}
	}
}

func TestReduceRejectionThenRetryThenFinish(t *testing.T) {
	state := Inactive()

	state, _ = Reduce(state, StartActivating(providers.Injected))
	state, _ = Reduce(state, Fail(errors.New("MetaMask Tx Signature: User rejected the request")))
	if state.Phase != PhaseRejectedByUser {
		t.Fatalf("expected rejection phase, got %s", state.Phase)
	}

	state, _ = Reduce(state, Retry())
	if state.Phase != PhaseActivating || state.Connector != providers.Injected {
		t.Fatalf("expected retry to re-activate the injected connector, got %s", state)
	}

	state, _ = Reduce(state, FinishActivating())
	if state.Phase != PhaseActive || state.Connector != providers.Injected {
		t.Fatalf("expected active injected connection, got %s", state)
	}
}

func TestReducePendingThenCancelThenLateSignal(t *testing.T) {
	state := Inactive()

	state, _ = Reduce(state, StartActivating(providers.BinanceChain))
	state, _ = Reduce(state, Fail(errors.New("a request is already pending for this wallet")))
	if state.Phase != PhaseAlreadyPending {
		t.Fatalf("expected pending phase, got %s", state.Phase)
	}

	state, _ = Reduce(state, Cancel())
	if !state.IsInactive() {
		t.Fatalf("expected inactive after cancel, got %s", state)
	}

	// The wallet resolved the earlier prompt after the user dismissed the
	// modal. The late signal still lands and flips the machine active.
	state, ok := Reduce(state, FinishActivating())
	if !ok || state.Phase != PhaseActive {
		t.Fatalf("expected late completion to apply, got %s (ok=%v)", state, ok)
	}
	if state.Connector != providers.Injected {
		t.Fatalf("expected injected fallback for late completion, got %v", state.Connector)
	}
}

func TestReduceDeactivateIsIdempotent(t *testing.T) {
	state, ok := Reduce(Inactive(), Deactivate())
	if !ok {
		t.Fatalf("expected Deactivate to apply while already inactive")
	}
	if !state.IsInactive() {
		t.Fatalf("expected inactive state, got %s", state)
	}
}

func TestClassifyFailureIsCaseInsensitive(t *testing.T) {
	if got := ClassifyFailure(errors.New("USER REJECTED")); got != PhaseRejectedByUser {
		t.Fatalf("expected rejection classification, got %s", got)
	}
	if got := ClassifyFailure(errors.New("Already Pending authorization")); got != PhaseAlreadyPending {
		t.Fatalf("expected pending classification, got %s", got)
	}
}
