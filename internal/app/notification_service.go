package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"walletgo/internal/bus"
	"walletgo/internal/config"
	"walletgo/internal/connect"
	"walletgo/internal/notifications"
)

const (
	notificationTitleConnected    = "Wallet connected"
	notificationTitleDisconnected = "Wallet disconnected"
)

// NotificationService listens to connection state changes and emits
// user-facing notifications. Only the Inactive/Active boundary is announced;
// intermediate retry states stay in the dialogs.
type NotificationService struct {
	bus           bus.MessageBus
	currentConfig func() config.AppConfig
	isForeground  func() bool
	sender        notifications.Sender
	logger        *slog.Logger

	mu        sync.Mutex
	lastPhase connect.Phase
	phaseSet  bool
}

func NewNotificationService(
	messageBus bus.MessageBus,
	currentConfig func() config.AppConfig,
	isForeground func() bool,
	sender notifications.Sender,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default().With("component", "app.notifications")
	}

	return &NotificationService{
		bus:           messageBus,
		currentConfig: currentConfig,
		isForeground:  isForeground,
		sender:        sender,
		logger:        logger,
	}
}

func (s *NotificationService) Start(ctx context.Context) {
	if s == nil || s.bus == nil || s.sender == nil {
		return
	}

	sub := s.bus.Subscribe(connect.TopicStateChanged)

	go func() {
		defer s.bus.Unsubscribe(sub, connect.TopicStateChanged)

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-sub:
				if !ok {
					return
				}
				event, ok := raw.(connect.StateChanged)
				if !ok {
					continue
				}
				s.handleStateChanged(event)
			}
		}
	}()
}

func (s *NotificationService) handleStateChanged(event connect.StateChanged) {
	s.mu.Lock()
	previous := s.lastPhase
	known := s.phaseSet
	s.lastPhase = event.State.Phase
	s.phaseSet = true
	s.mu.Unlock()

	if !s.enabled() {
		return
	}
	if s.isForeground != nil && s.isForeground() {
		return
	}

	switch event.State.Phase {
	case connect.PhaseActive:
		if known && previous == connect.PhaseActive {
			return
		}
		s.send(notificationTitleConnected, fmt.Sprintf("Connected via %s", event.State.Connector.Strategy()))
	case connect.PhaseInactive:
		if !known || previous != connect.PhaseActive {
			return
		}
		s.send(notificationTitleDisconnected, "The wallet connection ended")
	}
}

func (s *NotificationService) enabled() bool {
	if s.currentConfig == nil {
		return true
	}

	return s.currentConfig().UI.Notifications.ConnectionStatus
}

func (s *NotificationService) send(title, content string) {
	s.logger.Debug("sending notification", "title", title)
	s.sender.Send(notifications.Payload{Title: title, Content: content})
}
