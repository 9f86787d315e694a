package domain

import (
	"time"

	"github.com/google/uuid"

	apparatus "leverbox/internal/apparatus/domain"
)

type ID string

// TrialEvent is one journal entry: an engine event stamped with the box it
// came from and the wall clock time it was recorded.
type TrialEvent struct {
	ID                  ID
	BoxID               string
	Role                apparatus.Role
	Kind                apparatus.EventKind
	State               apparatus.TrialState
	Mode                apparatus.TaskMode
	LockStatus          apparatus.LockStatus
	Goal                int
	SynchPullCount      int
	TotalSynchPullCount int
	LongTimeout         bool
	SessionTime         time.Duration
	RecordedAt          time.Time
}

func NewTrialEvent(boxID string, event apparatus.Event, recordedAt time.Time) TrialEvent {
	return TrialEvent{
		ID:                  ID(uuid.NewString()),
		BoxID:               boxID,
		Role:                event.Role,
		Kind:                event.Kind,
		State:               event.State,
		Mode:                event.Mode,
		LockStatus:          event.LockStatus,
		Goal:                event.Goal,
		SynchPullCount:      event.SynchPullCount,
		TotalSynchPullCount: event.TotalSynchPullCount,
		LongTimeout:         event.LongTimeout,
		SessionTime:         event.At,
		RecordedAt:          recordedAt,
	}
}

// Summary counts journal entries of the current session.
type Summary struct {
	Rewards              int
	SynchPulls           int
	TrialsAbandoned      int
	LongTimeouts         int
	TransmissionFailures int
	CorruptMessages      int
	PeerPulls            int
}

func SummaryFromCounts(counts map[apparatus.EventKind]int) Summary {
	return Summary{
		Rewards:              counts[apparatus.EventReward],
		SynchPulls:           counts[apparatus.EventSynchPull],
		TrialsAbandoned:      counts[apparatus.EventTrialAbandoned],
		LongTimeouts:         counts[apparatus.EventLongTimeoutStarted],
		TransmissionFailures: counts[apparatus.EventTransmissionFailed],
		CorruptMessages:      counts[apparatus.EventCorruptMessage],
		PeerPulls:            counts[apparatus.EventPeerPull],
	}
}

// BoxStatus is the live view of one box served by the status API.
type BoxStatus struct {
	BoxID      string
	Hostname   string
	Version    string
	CommitHash string
	Channel    string
	Snapshot   apparatus.Snapshot
	UpdatedAt  time.Time
}
