package synclink

import (
	"fmt"
	"time"

	"leverbox/internal/logger"
)

const DefaultMaxAttempts = 5

// Endpoint sends and receives Messages over a Link. Delivery is at most once:
// a send that exhausts its attempts is dropped, never queued.
type Endpoint struct {
	link        Link
	maxAttempts int
	count       uint8

	lastPeerPull  time.Duration
	peerPullValid bool

	log logger.Logger
}

func NewEndpoint(link Link, maxAttempts int, log logger.Logger) *Endpoint {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Endpoint{
		link:        link,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Send stamps msg with the next count and transmits it, retrying immediately
// on a missing link acknowledgment. The count advances once per call no
// matter how many attempts were made.
func (e *Endpoint) Send(msg Message) error {
	e.count++
	msg.Count = e.count

	payload, err := Encode(msg)
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if e.link.Transmit(payload) {
			e.log.Debugw("message sent", "count", msg.Count, "attempt", attempt)
			return nil
		}
	}

	e.log.Warnw("message dropped", "count", msg.Count, "attempts", e.maxAttempts)
	return fmt.Errorf("%w after %d attempts", ErrTransmissionFailed, e.maxAttempts)
}

// Poll returns the next pending message without blocking. A corrupt payload is
// discarded and reported as ErrCorruptMessage.
func (e *Endpoint) Poll(now time.Duration) (Message, bool, error) {
	payload, ok := e.link.Receive()
	if !ok {
		return Message{}, false, nil
	}

	msg, err := Decode(payload)
	if err != nil {
		return Message{}, false, err
	}

	if msg.PullDetected {
		e.lastPeerPull = now
		e.peerPullValid = true
	}
	e.log.Debugw("message received", "count", msg.Count, "pull_detected", msg.PullDetected,
		"trigger_reward", msg.TriggerReward, "lock_lever", msg.LockLever, "remote_lock", msg.RemoteLock)
	return msg, true, nil
}

// PeerPulledWithin reports whether the peer's last pull is no older than window.
func (e *Endpoint) PeerPulledWithin(now, window time.Duration) bool {
	return e.peerPullValid && now-e.lastPeerPull <= window
}

// InvalidatePeerPull forgets the last peer pull so it cannot be counted twice.
func (e *Endpoint) InvalidatePeerPull() {
	e.peerPullValid = false
}

func (e *Endpoint) Count() uint8 {
	return e.count
}
