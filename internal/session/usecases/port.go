package usecases

import (
	"context"
	"errors"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/input"
	"leverbox/internal/session/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/session/usecases/port_mock.go -package=usecases

var (
	ErrTrialEventNotFound = errors.New("trial event not found")
	ErrStatusUnavailable  = errors.New("control loop has not ticked yet")
)

// Pagination encapsulates pagination parameters for repository queries
type Pagination struct {
	Limit  int
	Offset int
}

// JournalFilter narrows journal queries. An empty Kind matches every kind.
type JournalFilter struct {
	Kind apparatus.EventKind
}

type JournalRepository interface {
	Append(context.Context, domain.TrialEvent) error
	FindAll(context.Context, JournalFilter, Pagination) ([]domain.TrialEvent, int, error)
	Get(context.Context, domain.ID) (domain.TrialEvent, error)
	CountByKind(context.Context) (map[apparatus.EventKind]int, error)
}

// EventPublisher relays journal entries off the box.
type EventPublisher interface {
	Publish(context.Context, domain.TrialEvent) error
}

// Apparatus is the hardware side of the control loop.
type Apparatus interface {
	Update(now time.Duration) input.Edges
	Close() error
}

type GestureDecoder interface {
	Update(now time.Duration, pressed, changed bool)
}

type TaskEngine interface {
	Tick(now time.Duration)
	Snapshot() apparatus.Snapshot
}
