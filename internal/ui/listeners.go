package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"walletgo/internal/bus"
	"walletgo/internal/connect"
)

// startUIEventListeners subscribes the view to connection state changes and
// the eager-probe result. The returned stop func detaches both listeners and
// is safe to call more than once.
func startUIEventListeners(
	messageBus bus.MessageBus,
	logger *slog.Logger,
	onStateChanged func(connect.StateChanged),
	onEagerResult func(connect.EagerResult),
) func() {
	if logger == nil {
		logger = slog.Default().With("component", "ui")
	}
	if messageBus == nil {
		logger.Debug("skipping UI event listeners: message bus is nil")

		return func() {}
	}

	stateSub := messageBus.Subscribe(connect.TopicStateChanged)
	eagerSub := messageBus.Subscribe(connect.TopicEagerResult)
	logger.Debug(
		"subscribed to UI bus topics",
		"topics", []string{connect.TopicStateChanged, connect.TopicEagerResult},
	)
	done := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case raw, ok := <-stateSub:
				if !ok {
					logger.Debug("state change subscription closed")

					return
				}
				event, ok := raw.(connect.StateChanged)
				if !ok {
					logger.Debug("ignoring unexpected state payload", "payload_type", fmt.Sprintf("%T", raw))

					continue
				}
				select {
				case <-done:
					return
				default:
				}
				if onStateChanged != nil {
					onStateChanged(event)
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-done:
				return
			case raw, ok := <-eagerSub:
				if !ok {
					logger.Debug("eager result subscription closed")

					return
				}
				event, ok := raw.(connect.EagerResult)
				if !ok {
					logger.Debug("ignoring unexpected eager payload", "payload_type", fmt.Sprintf("%T", raw))

					continue
				}
				select {
				case <-done:
					return
				default:
				}
				if onEagerResult != nil {
					onEagerResult(event)
				}
			}
		}
	}()

	return func() {
		stopOnce.Do(func() {
			logger.Debug("stopping UI event listeners")
			close(done)
			messageBus.Unsubscribe(stateSub, connect.TopicStateChanged)
			messageBus.Unsubscribe(eagerSub, connect.TopicEagerResult)
		})
	}
}
