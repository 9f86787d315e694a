package communication

import (
	"context"
	"fmt"

	"leverbox/internal/infra/mqtt"
	"leverbox/internal/session/communication/internal"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/usecases"
)

// EventsTopic is where a box announces its trial events.
func EventsTopic(channel, role string) string {
	return mqtt.LinkTopic(channel, role) + "/events"
}

func NewEventPublisher(client mqtt.Client, channel, role string) *EventPublisher {
	return &EventPublisher{
		client: client,
		topic:  EventsTopic(channel, role),
	}
}

var _ usecases.EventPublisher = (*EventPublisher)(nil)

type EventPublisher struct {
	client mqtt.Client
	topic  string
}

func (p *EventPublisher) Publish(_ context.Context, event domain.TrialEvent) error {
	err := p.client.Publish(p.topic, internal.FromTrialEvent(event))
	if err != nil {
		return fmt.Errorf("publishing trial event to mqtt: %w", err)
	}

	return nil
}
