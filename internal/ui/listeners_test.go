package ui

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"walletgo/internal/bus"
	"walletgo/internal/connect"
	"walletgo/internal/providers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newListenerBus(t *testing.T) bus.MessageBus {
	t.Helper()
	messageBus := bus.New(testLogger())
	t.Cleanup(messageBus.Close)

	return messageBus
}

func waitForCounter(t *testing.T, counter *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for counter to reach %d, got %d", want, counter.Load())
}

func TestStartUIEventListenersDeliversStateChanges(t *testing.T) {
	messageBus := newListenerBus(t)

	var stateEvents atomic.Int64
	var lastPhase atomic.Value
	stop := startUIEventListeners(messageBus, testLogger(), func(event connect.StateChanged) {
		lastPhase.Store(event.State.Phase)
		stateEvents.Add(1)
	}, nil)
	defer stop()

	messageBus.Publish(connect.TopicStateChanged, connect.StateChanged{
		Previous: connect.PhaseInactive,
		State:    connect.Activating(providers.Injected),
		At:       time.Now(),
	})

	waitForCounter(t, &stateEvents, 1)
	if got := lastPhase.Load(); got != connect.PhaseActivating {
		t.Fatalf("unexpected delivered phase: %v", got)
	}
}

func TestStartUIEventListenersDeliversEagerResult(t *testing.T) {
	messageBus := newListenerBus(t)

	var eagerEvents atomic.Int64
	stop := startUIEventListeners(messageBus, testLogger(), nil, func(event connect.EagerResult) {
		eagerEvents.Add(1)
	})
	defer stop()

	messageBus.Publish(connect.TopicEagerResult, connect.EagerResult{Connected: true, At: time.Now()})

	waitForCounter(t, &eagerEvents, 1)
}

func TestStartUIEventListenersStopPreventsFurtherCallbacks(t *testing.T) {
	messageBus := newListenerBus(t)

	var stateEvents atomic.Int64
	stop := startUIEventListeners(messageBus, testLogger(), func(connect.StateChanged) {
		stateEvents.Add(1)
	}, nil)

	stop()
	// Stop must tolerate being called twice.
	stop()

	messageBus.Publish(connect.TopicStateChanged, connect.StateChanged{
		Previous: connect.PhaseInactive,
		State:    connect.Activating(providers.Injected),
		At:       time.Now(),
	})

	time.Sleep(100 * time.Millisecond)
	if got := stateEvents.Load(); got != 0 {
		t.Fatalf("expected no callbacks after stop, got %d", got)
	}
}

func TestStartUIEventListenersIgnoresUnexpectedPayloads(t *testing.T) {
	messageBus := newListenerBus(t)

	var stateEvents atomic.Int64
	stop := startUIEventListeners(messageBus, testLogger(), func(connect.StateChanged) {
		stateEvents.Add(1)
	}, nil)
	defer stop()

	messageBus.Publish(connect.TopicStateChanged, "not a state change")
	messageBus.Publish(connect.TopicStateChanged, connect.StateChanged{
		Previous: connect.PhaseInactive,
		State:    connect.Activating(providers.Injected),
		At:       time.Now(),
	})

	waitForCounter(t, &stateEvents, 1)
	if got := stateEvents.Load(); got != 1 {
		t.Fatalf("expected only the typed payload to be delivered, got %d", got)
	}
}

func TestStartUIEventListenersNilBusIsNoop(t *testing.T) {
	stop := startUIEventListeners(nil, nil, nil, nil)
	stop()
}
