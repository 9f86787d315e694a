package usecases

import (
	"context"
	"errors"
	"log/slog"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/infra/async"
)

// BrokerObserver forwards engine events to the in-process broker. Publishing
// never blocks the control loop.
type BrokerObserver struct {
	broker async.InternalBroker
}

var _ task.Observer = (*BrokerObserver)(nil)

func NewBrokerObserver(broker async.InternalBroker) *BrokerObserver {
	return &BrokerObserver{broker: broker}
}

func (o *BrokerObserver) Observe(event apparatus.Event) {
	err := o.broker.Publish(context.Background(), BoxEventsTopic, async.BrokerMessage{
		Event: string(event.Kind),
		Value: event,
	})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Warn("publishing box event", slog.String("kind", string(event.Kind)), slog.Any("error", err))
	}
}
