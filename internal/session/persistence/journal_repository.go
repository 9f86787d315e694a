package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/sql"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/persistence/internal"
	"leverbox/internal/session/usecases"
)

func NewJournalRepository(orm sql.ORM) (*SimpleJournalRepository, error) {
	err := orm.AutoMigrate(&internal.TrialEvent{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating trial event: %w", err)
	}

	return &SimpleJournalRepository{
		orm: orm,
	}, nil
}

var _ usecases.JournalRepository = (*SimpleJournalRepository)(nil)

// SimpleJournalRepository keeps the session journal. Entries are returned
// in the order they were appended.
type SimpleJournalRepository struct {
	orm      sql.ORM
	sequence atomic.Int64
}

func (r *SimpleJournalRepository) Append(ctx context.Context, event domain.TrialEvent) error {
	entity := internal.FromTrialEvent(event, r.sequence.Add(1))
	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating trial event: %w", err)
	}

	return nil
}

func (r *SimpleJournalRepository) FindAll(ctx context.Context, filter usecases.JournalFilter, pagination usecases.Pagination) ([]domain.TrialEvent, int, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("counting trial events: %w", err)
	}

	query := r.filtered(ctx, filter).Order("sequence asc").Offset(pagination.Offset)
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit)
	}

	var entities internal.TrialEventSet
	err = query.Find(&entities).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("finding trial events: %w", err)
	}

	return entities.ToDomain(), int(total), nil
}

func (r *SimpleJournalRepository) Get(ctx context.Context, id domain.ID) (domain.TrialEvent, error) {
	var entities internal.TrialEventSet
	err := r.orm.WithContext(ctx).Where("id = ?", string(id)).Limit(1).Find(&entities).Error()
	if err != nil {
		return domain.TrialEvent{}, fmt.Errorf("getting trial event: %w", err)
	}
	if len(entities) == 0 {
		return domain.TrialEvent{}, usecases.ErrTrialEventNotFound
	}

	return entities[0].ToDomain(), nil
}

func (r *SimpleJournalRepository) CountByKind(ctx context.Context) (map[apparatus.EventKind]int, error) {
	var rows []internal.KindCount
	err := r.orm.WithContext(ctx).
		Model(&internal.TrialEvent{}).
		Select("kind, count(*) as total").
		Group("kind").
		Scan(&rows).
		Error()
	if err != nil && !errors.Is(err, sql.ErrRecordNotFound) {
		return nil, fmt.Errorf("counting trial events by kind: %w", err)
	}

	counts := make(map[apparatus.EventKind]int, len(rows))
	for _, row := range rows {
		counts[apparatus.EventKind(row.Kind)] = int(row.Total)
	}
	return counts, nil
}

func (r *SimpleJournalRepository) filtered(ctx context.Context, filter usecases.JournalFilter) sql.ORM {
	query := r.orm.WithContext(ctx).Model(&internal.TrialEvent{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	return query
}
