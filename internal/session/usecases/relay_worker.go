package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/async"
	"leverbox/internal/session/domain"
)

// RelayWorker forwards trial events, without state transitions, to an
// external publisher. Failures are logged and the event is dropped.
type RelayWorker struct {
	boxID        string
	broker       async.InternalBroker
	publisher    EventPublisher
	subscription async.Subscription
}

var _ async.Worker = (*RelayWorker)(nil)

func NewRelayWorker(boxID string, broker async.InternalBroker, publisher EventPublisher) (*RelayWorker, error) {
	subscription, err := broker.Subscribe(BoxEventsTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", BoxEventsTopic, err)
	}

	return &RelayWorker{
		boxID:        boxID,
		broker:       broker,
		publisher:    publisher,
		subscription: subscription,
	}, nil
}

func (w *RelayWorker) Run(ctx context.Context, done func()) {
	defer done()
	slog.Info("starting relay worker")

	for {
		select {
		case <-ctx.Done():
			slog.Info("relay worker cancelled")
			return
		case msg, ok := <-w.subscription.Receiver:
			if !ok {
				return
			}
			event, ok := msg.Value.(apparatus.Event)
			if !ok || event.Kind == apparatus.EventStateChanged {
				continue
			}
			if err := w.publisher.Publish(ctx, domain.NewTrialEvent(w.boxID, event, time.Now())); err != nil {
				slog.Warn("relaying trial event", slog.String("kind", string(event.Kind)), slog.Any("error", err))
			}
		}
	}
}

func (w *RelayWorker) Shutdown() {
	slog.Info("relay worker shutdown")
	if err := w.broker.Unsubscribe(BoxEventsTopic, w.subscription); err != nil {
		slog.Error("failed to unsubscribe during shutdown", slog.Any("error", err))
	}
}
