package internal

import (
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/session/domain"
)

type Snapshot struct {
	Role                string `json:"role"`
	State               string `json:"state"`
	Mode                string `json:"mode"`
	LockStatus          string `json:"lock_status"`
	Goal                int    `json:"goal"`
	SynchPullCount      int    `json:"synch_pull_count"`
	TotalSynchPullCount int    `json:"total_synch_pull_count"`
	LongTimeout         bool   `json:"long_timeout"`
	SessionTimeMs       int64  `json:"session_time_ms"`
}

func FromSnapshot(s apparatus.Snapshot) Snapshot {
	return Snapshot{
		Role:                s.Role.String(),
		State:               s.State.String(),
		Mode:                s.Mode.String(),
		LockStatus:          s.LockStatus.String(),
		Goal:                s.Goal,
		SynchPullCount:      s.SynchPullCount,
		TotalSynchPullCount: s.TotalSynchPullCount,
		LongTimeout:         s.LongTimeout,
		SessionTimeMs:       s.At.Milliseconds(),
	}
}

type StatusResponse struct {
	BoxID      string    `json:"box_id"`
	Hostname   string    `json:"hostname"`
	Version    string    `json:"version"`
	CommitHash string    `json:"commit_hash"`
	Channel    string    `json:"channel"`
	Engine     Snapshot  `json:"engine"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToStatusResponse(status domain.BoxStatus) StatusResponse {
	return StatusResponse{
		BoxID:      status.BoxID,
		Hostname:   status.Hostname,
		Version:    status.Version,
		CommitHash: status.CommitHash,
		Channel:    status.Channel,
		Engine:     FromSnapshot(status.Snapshot),
		UpdatedAt:  status.UpdatedAt,
	}
}
