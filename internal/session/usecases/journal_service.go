package usecases

import (
	"context"
	"fmt"

	"leverbox/internal/session/domain"
)

func NewJournalService(repository JournalRepository) *SimpleJournalService {
	return &SimpleJournalService{repository: repository}
}

var _ JournalService = (*SimpleJournalService)(nil)

type SimpleJournalService struct {
	repository JournalRepository
}

func (s *SimpleJournalService) Trials(ctx context.Context, filter JournalFilter, pagination Pagination) ([]domain.TrialEvent, int, error) {
	events, total, err := s.repository.FindAll(ctx, filter, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("finding trial events: %w", err)
	}
	return events, total, nil
}

func (s *SimpleJournalService) Trial(ctx context.Context, id domain.ID) (domain.TrialEvent, error) {
	event, err := s.repository.Get(ctx, id)
	if err != nil {
		return domain.TrialEvent{}, fmt.Errorf("getting trial event %s: %w", id, err)
	}
	return event, nil
}

func (s *SimpleJournalService) Summary(ctx context.Context) (domain.Summary, error) {
	counts, err := s.repository.CountByKind(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("counting trial events: %w", err)
	}
	return domain.SummaryFromCounts(counts), nil
}
