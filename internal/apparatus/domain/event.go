package domain

import (
	"fmt"
	"time"
)

type EventKind string

const (
	EventStateChanged       EventKind = "state_changed"
	EventReward             EventKind = "reward"
	EventSynchPull          EventKind = "synch_pull"
	EventTrialAbandoned     EventKind = "trial_abandoned"
	EventLockToggled        EventKind = "lock_toggled"
	EventModeChanged        EventKind = "mode_changed"
	EventGoalRedrawn        EventKind = "goal_redrawn"
	EventLongTimeoutStarted EventKind = "long_timeout_started"
	EventLongTimeoutEnded   EventKind = "long_timeout_ended"
	EventTransmissionFailed EventKind = "transmission_failed"
	EventCorruptMessage     EventKind = "corrupt_message"
	EventPeerPull           EventKind = "peer_pull"
)

var eventKinds = []EventKind{
	EventStateChanged,
	EventReward,
	EventSynchPull,
	EventTrialAbandoned,
	EventLockToggled,
	EventModeChanged,
	EventGoalRedrawn,
	EventLongTimeoutStarted,
	EventLongTimeoutEnded,
	EventTransmissionFailed,
	EventCorruptMessage,
	EventPeerPull,
}

func ParseEventKind(value string) (EventKind, error) {
	for _, kind := range eventKinds {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventKind, value)
}

// Event is emitted by the task engine for observers outside the control loop.
// At is the control-loop clock value of the tick that produced it.
type Event struct {
	Kind                EventKind
	Role                Role
	State               TrialState
	Mode                TaskMode
	LockStatus          LockStatus
	Goal                int
	SynchPullCount      int
	TotalSynchPullCount int
	LongTimeout         bool
	At                  time.Duration
}

// Snapshot is a point-in-time copy of the engine state.
type Snapshot struct {
	Role                Role
	State               TrialState
	Mode                TaskMode
	LockStatus          LockStatus
	Goal                int
	SynchPullCount      int
	TotalSynchPullCount int
	LongTimeout         bool
	At                  time.Duration
}
