package usecases

import (
	"context"
	"sync/atomic"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/node"
	"leverbox/internal/session/domain"
)

type boardEntry struct {
	snapshot  apparatus.Snapshot
	updatedAt time.Time
}

// StatusBoard holds the latest engine snapshot. The control loop stores,
// everyone else reads.
type StatusBoard struct {
	box     node.Node
	channel string
	latest  atomic.Pointer[boardEntry]
}

var _ StatusService = (*StatusBoard)(nil)

func NewStatusBoard(box node.Node, channel string) *StatusBoard {
	return &StatusBoard{box: box, channel: channel}
}

func (b *StatusBoard) Store(snapshot apparatus.Snapshot) {
	b.latest.Store(&boardEntry{snapshot: snapshot, updatedAt: time.Now()})
}

func (b *StatusBoard) Status(_ context.Context) (domain.BoxStatus, error) {
	entry := b.latest.Load()
	if entry == nil {
		return domain.BoxStatus{}, ErrStatusUnavailable
	}

	return domain.BoxStatus{
		BoxID:      b.box.ID,
		Hostname:   b.box.Hostname,
		Version:    b.box.Version,
		CommitHash: b.box.CommitHash,
		Channel:    b.channel,
		Snapshot:   entry.snapshot,
		UpdatedAt:  entry.updatedAt,
	}, nil
}
