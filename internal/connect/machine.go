package connect

import (
	"log/slog"
	"sync"
	"time"

	"walletgo/internal/bus"
)

// Machine serializes reducer dispatches over a single state value and
// publishes accepted transitions on the bus. Events are applied one at a
// time; there is no queueing beyond the callers blocking on the lock.
type Machine struct {
	mu     sync.Mutex
	state  State
	bus    bus.MessageBus
	logger *slog.Logger
}

func NewMachine(logger *slog.Logger, messageBus bus.MessageBus) *Machine {
	if logger == nil {
		logger = slog.Default().With("component", "connect")
	}

	return &Machine{
		state:  Inactive(),
		bus:    messageBus,
		logger: logger,
	}
}

// Dispatch applies action and returns the resulting state. Actions that do
// not apply in the current state are logged and ignored; the state is
// returned unchanged.
func (m *Machine) Dispatch(action Action) State {
	m.mu.Lock()
	prev := m.state
	next, ok := Reduce(prev, action)
	if ok {
		m.state = next
	}
	m.mu.Unlock()

	if !ok {
		m.logger.Warn("ignoring action", "action", action.String(), "state", prev.Phase)

		return prev
	}

	m.logger.Debug("transition", "action", action.String(), "from", prev.Phase, "to", next.Phase)
	if m.bus != nil {
		m.bus.Publish(TopicStateChanged, StateChanged{
			Previous: prev.Phase,
			State:    next,
			At:       time.Now(),
		})
	}

	return next
}

// Current returns the machine's state snapshot.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}
