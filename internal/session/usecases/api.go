package usecases

import (
	"context"

	"leverbox/internal/session/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/session/usecases/api_mock.go -package=usecases

type JournalService interface {
	Trials(context.Context, JournalFilter, Pagination) ([]domain.TrialEvent, int, error)
	Trial(context.Context, domain.ID) (domain.TrialEvent, error)
	Summary(context.Context) (domain.Summary, error)
}

type StatusService interface {
	Status(context.Context) (domain.BoxStatus, error)
}
