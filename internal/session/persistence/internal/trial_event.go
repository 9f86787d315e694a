package internal

import (
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/session/domain"
)

type TrialEventSet []TrialEvent

func (TrialEventSet) TableName() string {
	return "trial_events"
}

func (s TrialEventSet) ToDomain() []domain.TrialEvent {
	result := make([]domain.TrialEvent, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}

	return result
}

type TrialEvent struct {
	ID                  string `gorm:"primaryKey"`
	Sequence            int64  `gorm:"autoIncrement:false;index"`
	BoxID               string
	Role                int
	Kind                string `gorm:"index"`
	State               int
	Mode                int
	LockStatus          int
	Goal                int
	SynchPullCount      int
	TotalSynchPullCount int
	LongTimeout         bool
	SessionTimeMs       int64
	RecordedAt          time.Time
}

func (TrialEvent) TableName() string {
	return "trial_events"
}

func FromTrialEvent(event domain.TrialEvent, sequence int64) TrialEvent {
	return TrialEvent{
		ID:                  string(event.ID),
		Sequence:            sequence,
		BoxID:               event.BoxID,
		Role:                int(event.Role),
		Kind:                string(event.Kind),
		State:               int(event.State),
		Mode:                int(event.Mode),
		LockStatus:          int(event.LockStatus),
		Goal:                event.Goal,
		SynchPullCount:      event.SynchPullCount,
		TotalSynchPullCount: event.TotalSynchPullCount,
		LongTimeout:         event.LongTimeout,
		SessionTimeMs:       event.SessionTime.Milliseconds(),
		RecordedAt:          event.RecordedAt,
	}
}

func (e TrialEvent) ToDomain() domain.TrialEvent {
	return domain.TrialEvent{
		ID:                  domain.ID(e.ID),
		BoxID:               e.BoxID,
		Role:                apparatus.Role(e.Role),
		Kind:                apparatus.EventKind(e.Kind),
		State:               apparatus.TrialState(e.State),
		Mode:                apparatus.TaskMode(e.Mode),
		LockStatus:          apparatus.LockStatus(e.LockStatus),
		Goal:                e.Goal,
		SynchPullCount:      e.SynchPullCount,
		TotalSynchPullCount: e.TotalSynchPullCount,
		LongTimeout:         e.LongTimeout,
		SessionTime:         time.Duration(e.SessionTimeMs) * time.Millisecond,
		RecordedAt:          e.RecordedAt,
	}
}

// KindCount is one row of the per kind aggregate.
type KindCount struct {
	Kind  string
	Total int64
}
