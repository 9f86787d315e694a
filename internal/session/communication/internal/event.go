package internal

import (
	"time"

	"leverbox/internal/apparatus/audio"
	"leverbox/internal/session/domain"
)

type TrialEvent struct {
	ID                  string    `json:"id"`
	BoxID               string    `json:"box_id"`
	Role                string    `json:"role"`
	Kind                string    `json:"kind"`
	State               string    `json:"state"`
	Mode                string    `json:"mode"`
	LockStatus          string    `json:"lock_status"`
	Goal                int       `json:"goal"`
	SynchPullCount      int       `json:"synch_pull_count"`
	TotalSynchPullCount int       `json:"total_synch_pull_count"`
	LongTimeout         bool      `json:"long_timeout"`
	SessionTimeMs       int64     `json:"session_time_ms"`
	RecordedAt          time.Time `json:"recorded_at"`
}

func FromTrialEvent(event domain.TrialEvent) TrialEvent {
	return TrialEvent{
		ID:                  string(event.ID),
		BoxID:               event.BoxID,
		Role:                event.Role.String(),
		Kind:                string(event.Kind),
		State:               event.State.String(),
		Mode:                event.Mode.String(),
		LockStatus:          event.LockStatus.String(),
		Goal:                event.Goal,
		SynchPullCount:      event.SynchPullCount,
		TotalSynchPullCount: event.TotalSynchPullCount,
		LongTimeout:         event.LongTimeout,
		SessionTimeMs:       event.SessionTime.Milliseconds(),
		RecordedAt:          event.RecordedAt,
	}
}

type PlayTrack struct {
	Folder int `json:"folder"`
	File   int `json:"file"`
}

func FromTrack(track audio.Track) PlayTrack {
	return PlayTrack{Folder: track.Folder, File: track.File}
}
