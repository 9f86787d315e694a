package usecases

import (
	"context"
	"fmt"
	"log/slog"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/async"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "leverbox"

// MetricWorker turns engine events into OTel instruments.
type MetricWorker struct {
	broker       async.InternalBroker
	subscription async.Subscription

	events         metric.Int64Counter
	dispensed      metric.Int64Counter
	synchPullCount metric.Int64Gauge
	goal           metric.Int64Gauge
	rewardAmount   int64
}

var _ async.Worker = (*MetricWorker)(nil)

func NewMetricWorker(broker async.InternalBroker, rewardAmount int) (*MetricWorker, error) {
	meter := otel.Meter(_meterName)

	events, err := meter.Int64Counter(
		fmt.Sprintf("%s.%s", _meterName, "box.events.total"),
		metric.WithDescription("Engine events by kind"),
	)
	if err != nil {
		return nil, err
	}

	dispensed, err := meter.Int64Counter(
		fmt.Sprintf("%s.%s", _meterName, "reward.units.total"),
		metric.WithDescription("Reward units dispensed"),
	)
	if err != nil {
		return nil, err
	}

	synchPullCount, err := meter.Int64Gauge(
		fmt.Sprintf("%s.%s", _meterName, "synch_pulls.towards_long_timeout"),
		metric.WithDescription("Synchronized pulls counted towards the long timeout"),
	)
	if err != nil {
		return nil, err
	}

	goal, err := meter.Int64Gauge(
		fmt.Sprintf("%s.%s", _meterName, "goal"),
		metric.WithDescription("Current pull goal"),
	)
	if err != nil {
		return nil, err
	}

	subscription, err := broker.Subscribe(BoxEventsTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", BoxEventsTopic, err)
	}

	return &MetricWorker{
		broker:         broker,
		subscription:   subscription,
		events:         events,
		dispensed:      dispensed,
		synchPullCount: synchPullCount,
		goal:           goal,
		rewardAmount:   int64(rewardAmount),
	}, nil
}

func (w *MetricWorker) Run(ctx context.Context, done func()) {
	defer done()
	slog.Info("starting metric worker", slog.String("topic", string(BoxEventsTopic)))

	for {
		select {
		case <-ctx.Done():
			slog.Info("metric worker cancelled")
			return
		case msg, ok := <-w.subscription.Receiver:
			if !ok {
				return
			}
			if event, ok := msg.Value.(apparatus.Event); ok {
				w.record(ctx, event)
			}
		}
	}
}

func (w *MetricWorker) record(ctx context.Context, event apparatus.Event) {
	role := attribute.String("role", event.Role.String())
	w.events.Add(ctx, 1, metric.WithAttributes(role, attribute.String("kind", string(event.Kind))))

	switch event.Kind {
	case apparatus.EventReward:
		w.dispensed.Add(ctx, w.rewardAmount, metric.WithAttributes(role))
	case apparatus.EventSynchPull, apparatus.EventLongTimeoutStarted:
		w.synchPullCount.Record(ctx, int64(event.TotalSynchPullCount), metric.WithAttributes(role))
	case apparatus.EventModeChanged, apparatus.EventGoalRedrawn:
		w.goal.Record(ctx, int64(event.Goal), metric.WithAttributes(role, attribute.String("mode", event.Mode.String())))
	}
}

func (w *MetricWorker) Shutdown() {
	slog.Info("metric worker shutdown")
	if err := w.broker.Unsubscribe(BoxEventsTopic, w.subscription); err != nil {
		slog.Error("failed to unsubscribe during shutdown", slog.Any("error", err))
	}
}
