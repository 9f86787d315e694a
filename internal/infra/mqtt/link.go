package mqtt

import (
	"fmt"
	"log/slog"
	"sync"
)

const _defaultInboxSize = 32

// LinkTopic is the topic a box publishes its sync frames on.
func LinkTopic(channel, role string) string {
	return fmt.Sprintf("leverbox/%s/%s", channel, role)
}

type LinkOpts struct {
	Channel   string
	LocalRole string
	PeerRole  string
	InboxSize int
}

// Link carries sync frames between the two boxes of a pair. Each box
// publishes on its own role topic and listens on its peer's.
type Link struct {
	client   Client
	outbound string
	inbound  string
	inbox    chan []byte

	mu      sync.Mutex
	dropped int
}

func NewLink(client Client, opts LinkOpts) (*Link, error) {
	size := opts.InboxSize
	if size < 1 {
		size = _defaultInboxSize
	}

	l := &Link{
		client:   client,
		outbound: LinkTopic(opts.Channel, opts.LocalRole),
		inbound:  LinkTopic(opts.Channel, opts.PeerRole),
		inbox:    make(chan []byte, size),
	}

	if err := client.Subscribe(l.inbound, _defaultQoS, l.onMessage); err != nil {
		return nil, fmt.Errorf("subscribing link: %w", err)
	}
	return l, nil
}

// Transmit makes one publish attempt. A broker acknowledgment within the
// publish timeout counts as delivered.
func (l *Link) Transmit(payload []byte) bool {
	frame := append([]byte(nil), payload...)
	if err := l.client.Publish(l.outbound, frame); err != nil {
		slog.Debug("link transmit attempt failed", "topic", l.outbound, "error", err)
		return false
	}
	return true
}

func (l *Link) Receive() ([]byte, bool) {
	select {
	case frame := <-l.inbox:
		return frame, true
	default:
		return nil, false
	}
}

// Dropped counts inbound frames discarded because the inbox was full.
func (l *Link) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

func (l *Link) onMessage(_ Client, msg Message) {
	frame := append([]byte(nil), msg.Payload()...)
	select {
	case l.inbox <- frame:
	default:
		l.mu.Lock()
		l.dropped++
		l.mu.Unlock()
		slog.Warn("link inbox full, dropping frame", "topic", msg.Topic())
	}
	msg.Ack()
}
