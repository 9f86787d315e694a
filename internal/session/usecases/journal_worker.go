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

type JournalWorkerOpts struct {
	BoxID string
	// RecordStateChanges also journals every state transition.
	RecordStateChanges bool
}

// JournalWorker records engine events into the session journal.
type JournalWorker struct {
	opts         JournalWorkerOpts
	broker       async.InternalBroker
	repository   JournalRepository
	subscription async.Subscription
	now          func() time.Time
}

var _ async.Worker = (*JournalWorker)(nil)

// NewJournalWorker subscribes right away so no event published after
// construction is missed.
func NewJournalWorker(opts JournalWorkerOpts, broker async.InternalBroker, repository JournalRepository) (*JournalWorker, error) {
	subscription, err := broker.Subscribe(BoxEventsTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", BoxEventsTopic, err)
	}

	return &JournalWorker{
		opts:         opts,
		broker:       broker,
		repository:   repository,
		subscription: subscription,
		now:          time.Now,
	}, nil
}

func (w *JournalWorker) Run(ctx context.Context, done func()) {
	defer done()
	slog.Info("starting journal worker", slog.String("box_id", w.opts.BoxID))

	for {
		select {
		case <-ctx.Done():
			slog.Info("journal worker cancelled")
			return
		case msg, ok := <-w.subscription.Receiver:
			if !ok {
				return
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *JournalWorker) handle(ctx context.Context, msg async.BrokerMessage) {
	event, ok := msg.Value.(apparatus.Event)
	if !ok {
		slog.Error("failed to cast box event",
			slog.String("type", fmt.Sprintf("%T", msg.Value)),
			slog.String("expected", "domain.Event"))
		return
	}
	if event.Kind == apparatus.EventStateChanged && !w.opts.RecordStateChanges {
		return
	}

	if err := w.repository.Append(ctx, domain.NewTrialEvent(w.opts.BoxID, event, w.now())); err != nil {
		slog.Error("appending trial event", slog.String("kind", string(event.Kind)), slog.Any("error", err))
	}
}

func (w *JournalWorker) Shutdown() {
	slog.Info("journal worker shutdown")
	if err := w.broker.Unsubscribe(BoxEventsTopic, w.subscription); err != nil {
		slog.Error("failed to unsubscribe during shutdown", slog.Any("error", err))
	}
}
