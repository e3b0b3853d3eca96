package notifications

import (
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"
)

// BeeepSender delivers notifications through the OS notification daemon
// without a GUI toolkit. Used by the headless debug command.
type BeeepSender struct {
	logger *slog.Logger
}

func NewBeeepSender(logger *slog.Logger) *BeeepSender {
	if logger == nil {
		logger = slog.Default().With("component", "notifications")
	}

	return &BeeepSender{logger: logger}
}

func (s *BeeepSender) Send(payload Payload) {
	title := strings.TrimSpace(payload.Title)
	content := strings.TrimSpace(payload.Content)
	if title == "" && content == "" {
		return
	}

	if err := beeep.Notify(title, content, ""); err != nil {
		s.logger.Debug("send desktop notification", "error", err)
	}
}
