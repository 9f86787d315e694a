package task

import (
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/synclink"
)

//go:generate mockgen -source=ports.go -destination=../../../test/unit/doubles/apparatus/task/ports_mock.go -package=task

// Apparatus is the actuation façade plus the debounced lever switches.
type Apparatus interface {
	LeverUp() bool
	LeverDown() bool
	Dispense(units int)
	SetLeverLock(unlocked bool)
}

type TonePlayer interface {
	Play(tone domain.Tone)
}

// Peer is the sync protocol endpoint towards the other box.
type Peer interface {
	Send(msg synclink.Message) error
	Poll(now time.Duration) (synclink.Message, bool, error)
	PeerPulledWithin(now, window time.Duration) bool
	InvalidatePeerPull()
}

type GestureSource interface {
	Gesture() gesture.Code
}

type Observer interface {
	Observe(event domain.Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(event domain.Event)

func (f ObserverFunc) Observe(event domain.Event) {
	f(event)
}

type nopObserver struct{}

func (nopObserver) Observe(domain.Event) {}
