package input

import (
	"time"

	"leverbox/internal/logger"
)

// RawReader reads the current, undebounced value of a digital input.
type RawReader func() bool

// Signal debounces one digital input. The stable value changes only on
// samples taken after the signal's own deadline.
type Signal struct {
	name     string
	window   time.Duration
	read     RawReader
	stable   bool
	deadline time.Duration
	sampled  bool
	log      logger.Logger
}

func NewSignal(name string, window time.Duration, read RawReader, log logger.Logger) *Signal {
	return &Signal{
		name:   name,
		window: window,
		read:   read,
		log:    log,
	}
}

// Sample returns the stable value and whether it changed on this call.
func (s *Signal) Sample(now time.Duration) (bool, bool) {
	if s.sampled && now <= s.deadline {
		return s.stable, false
	}

	s.sampled = true
	s.deadline = now + s.window
	raw := s.read()
	if raw == s.stable {
		return s.stable, false
	}

	s.stable = raw
	s.log.Debugw("input changed", "signal", s.name, "value", raw, "at", now)
	return s.stable, true
}

func (s *Signal) Value() bool {
	return s.stable
}

func (s *Signal) Name() string {
	return s.name
}

// Edges reports the stable values after one tick and which of them changed.
type Edges struct {
	LeverUp          bool
	LeverDown        bool
	Remote           bool
	LeverUpChanged   bool
	LeverDownChanged bool
	RemoteChanged    bool
}

// RemotePressed is true on the tick the remote button became engaged.
func (e Edges) RemotePressed() bool {
	return e.RemoteChanged && e.Remote
}

// RemoteReleased is true on the tick the remote button was let go.
func (e Edges) RemoteReleased() bool {
	return e.RemoteChanged && !e.Remote
}

type Windows struct {
	Lever  time.Duration
	Remote time.Duration
}

// Tracker owns the three debounced inputs of a box. The two lever switches
// share the lever window but keep separate deadlines.
type Tracker struct {
	LeverUp   *Signal
	LeverDown *Signal
	Remote    *Signal
}

type RawInputs interface {
	RawLeverUp() bool
	RawLeverDown() bool
	RawRemote() bool
}

func NewTracker(raw RawInputs, windows Windows, log logger.Logger) *Tracker {
	return &Tracker{
		LeverUp:   NewSignal("lever_up", windows.Lever, raw.RawLeverUp, log),
		LeverDown: NewSignal("lever_down", windows.Lever, raw.RawLeverDown, log),
		Remote:    NewSignal("remote", windows.Remote, raw.RawRemote, log),
	}
}

func (t *Tracker) Sample(now time.Duration) Edges {
	var e Edges
	e.LeverUp, e.LeverUpChanged = t.LeverUp.Sample(now)
	e.LeverDown, e.LeverDownChanged = t.LeverDown.Sample(now)
	e.Remote, e.RemoteChanged = t.Remote.Sample(now)
	return e
}
