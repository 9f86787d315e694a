package internal

import (
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/session/domain"
)

type TrialEventResponse struct {
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

func ToTrialEventResponse(event domain.TrialEvent) TrialEventResponse {
	return TrialEventResponse{
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

func ToTrialEventResponses(events []domain.TrialEvent) []TrialEventResponse {
	result := make([]TrialEventResponse, len(events))
	for i, event := range events {
		result[i] = ToTrialEventResponse(event)
	}
	return result
}

type SummaryResponse struct {
	Rewards              int `json:"rewards"`
	SynchPulls           int `json:"synch_pulls"`
	TrialsAbandoned      int `json:"trials_abandoned"`
	LongTimeouts         int `json:"long_timeouts"`
	TransmissionFailures int `json:"transmission_failures"`
	CorruptMessages      int `json:"corrupt_messages"`
	PeerPulls            int `json:"peer_pulls"`
}

func ToSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse(s)
}

// LiveEvent is one frame of the websocket event stream.
type LiveEvent struct {
	Type  string   `json:"type"`
	Kind  string   `json:"kind"`
	Event Snapshot `json:"event"`
}

func ToLiveEvent(event apparatus.Event) LiveEvent {
	return LiveEvent{
		Type: "box_event",
		Kind: string(event.Kind),
		Event: Snapshot{
			Role:                event.Role.String(),
			State:               event.State.String(),
			Mode:                event.Mode.String(),
			LockStatus:          event.LockStatus.String(),
			Goal:                event.Goal,
			SynchPullCount:      event.SynchPullCount,
			TotalSynchPullCount: event.TotalSynchPullCount,
			LongTimeout:         event.LongTimeout,
			SessionTimeMs:       event.At.Milliseconds(),
		},
	}
}
