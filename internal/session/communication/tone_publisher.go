package communication

import (
	"fmt"

	"leverbox/internal/apparatus/audio"
	"leverbox/internal/infra/mqtt"
	"leverbox/internal/session/communication/internal"
)

// AudioTopic is read by the sound module that plays the box tones.
func AudioTopic(channel, role string) string {
	return mqtt.LinkTopic(channel, role) + "/audio"
}

func NewTonePublisher(client mqtt.Client, channel, role string) *TonePublisher {
	return &TonePublisher{
		client: client,
		topic:  AudioTopic(channel, role),
	}
}

var _ audio.Sink = (*TonePublisher)(nil)

// TonePublisher asks a networked sound module to play a track.
type TonePublisher struct {
	client mqtt.Client
	topic  string
}

func (p *TonePublisher) PlayTrack(track audio.Track) error {
	if err := p.client.Publish(p.topic, internal.FromTrack(track)); err != nil {
		return fmt.Errorf("publishing track %s: %w", track, err)
	}
	return nil
}
