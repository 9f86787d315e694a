package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/cache"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/usecases"
)

type CachedJournalRepositoryConfig struct {
	Cache     cache.Cache
	KeyPrefix string
	// CountTTL bounds how stale the per-kind counts may get.
	CountTTL time.Duration
	// EventTTL applies to single events, which never change once appended.
	EventTTL time.Duration
}

func DefaultCachedJournalRepositoryConfig() *CachedJournalRepositoryConfig {
	return &CachedJournalRepositoryConfig{
		KeyPrefix: "journal:",
		CountTTL:  time.Second,
		EventTTL:  10 * time.Minute,
	}
}

// CachedJournalRepository keeps dashboard polling off the sqlite connection
// the journal worker writes through.
type CachedJournalRepository struct {
	next     usecases.JournalRepository
	cache    cache.Cache
	prefix   string
	countTTL time.Duration
	eventTTL time.Duration
}

var _ usecases.JournalRepository = (*CachedJournalRepository)(nil)

func NewCachedJournalRepository(next usecases.JournalRepository, config *CachedJournalRepositoryConfig) (*CachedJournalRepository, error) {
	if config == nil {
		config = DefaultCachedJournalRepositoryConfig()
	}
	if config.Cache == nil {
		return nil, fmt.Errorf("cache instance is required")
	}

	slog.Info("journal cache initialized",
		slog.String("key_prefix", config.KeyPrefix),
		slog.Duration("count_ttl", config.CountTTL))
	return &CachedJournalRepository{
		next:     next,
		cache:    config.Cache,
		prefix:   config.KeyPrefix,
		countTTL: config.CountTTL,
		eventTTL: config.EventTTL,
	}, nil
}

func (r *CachedJournalRepository) countsKey() string {
	return r.prefix + "counts"
}

func (r *CachedJournalRepository) eventKey(id domain.ID) string {
	return r.prefix + "event:" + string(id)
}

// Append drops the cached counts so the next summary sees the new event.
func (r *CachedJournalRepository) Append(ctx context.Context, event domain.TrialEvent) error {
	if err := r.next.Append(ctx, event); err != nil {
		return err
	}
	r.cache.Delete(ctx, r.countsKey())
	return nil
}

func (r *CachedJournalRepository) FindAll(ctx context.Context, filter usecases.JournalFilter, pagination usecases.Pagination) ([]domain.TrialEvent, int, error) {
	return r.next.FindAll(ctx, filter, pagination)
}

func (r *CachedJournalRepository) Get(ctx context.Context, id domain.ID) (domain.TrialEvent, error) {
	value, err := r.cache.GetOrSet(ctx, r.eventKey(id), r.eventTTL, func() (any, error) {
		return r.next.Get(ctx, id)
	})
	if err != nil {
		return domain.TrialEvent{}, err
	}
	return value.(domain.TrialEvent), nil
}

func (r *CachedJournalRepository) CountByKind(ctx context.Context) (map[apparatus.EventKind]int, error) {
	value, err := r.cache.GetOrSet(ctx, r.countsKey(), r.countTTL, func() (any, error) {
		return r.next.CountByKind(ctx)
	})
	if err != nil {
		return nil, err
	}

	counts := value.(map[apparatus.EventKind]int)
	copied := make(map[apparatus.EventKind]int, len(counts))
	for kind, total := range counts {
		copied[kind] = total
	}
	return copied, nil
}
