package bus

import (
	"log/slog"
	"reflect"

	"github.com/cskr/pubsub"
)

// capacity is the per-subscriber channel buffer. Wallet handshake traffic is
// sparse, but eager-connect and UI listeners attach before the first events
// fire, so a small buffer is enough.
const capacity = 64

type Subscription chan any

type MessageBus interface {
	Publish(topic string, msg any)
	Subscribe(topic string) Subscription
	Unsubscribe(ch Subscription, topics ...string)
	Close()
}

// PubSubBus is the process-wide event bus carrying wallet signals
// (active/error), machine state changes and UI-facing events.
type PubSubBus struct {
	ps     *pubsub.PubSub
	logger *slog.Logger
}

func New(logger *slog.Logger) *PubSubBus {
	if logger == nil {
		logger = slog.Default().With("component", "bus")
	}

	return &PubSubBus{
		ps:     pubsub.New(capacity),
		logger: logger,
	}
}

func (b *PubSubBus) Publish(topic string, msg any) {
	b.logger.Debug("publish", "topic", topic, "payload_type", payloadType(msg))
	b.ps.Pub(msg, topic)
}

func (b *PubSubBus) Subscribe(topic string) Subscription {
	ch := b.ps.Sub(topic)
	b.logger.Debug("subscribe", "topic", topic)

	return ch
}

func (b *PubSubBus) Unsubscribe(ch Subscription, topics ...string) {
	if len(topics) == 0 {
		b.ps.Unsub(ch)
		b.logger.Debug("unsubscribe", "mode", "all")

		return
	}
	b.ps.Unsub(ch, topics...)
	b.logger.Debug("unsubscribe", "topics", topics)
}

func (b *PubSubBus) Close() {
	b.ps.Shutdown()
}

func payloadType(v any) string {
	if v == nil {
		return "<nil>"
	}

	return reflect.TypeOf(v).String()
}
