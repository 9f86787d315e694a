package usecases_test

import (
	"context"
	"errors"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/usecases"
	mockusecases "leverbox/test/unit/doubles/session/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("JournalService", func() {
	var (
		ctrl       *gomock.Controller
		repository *mockusecases.MockJournalRepository
		service    *usecases.SimpleJournalService
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		repository = mockusecases.NewMockJournalRepository(ctrl)
		service = usecases.NewJournalService(repository)
		ctx = context.Background()
	})

	ginkgo.It("should summarize the counts per kind", func() {
		repository.EXPECT().CountByKind(ctx).Return(map[apparatus.EventKind]int{
			apparatus.EventReward:             4,
			apparatus.EventSynchPull:          6,
			apparatus.EventTrialAbandoned:     2,
			apparatus.EventLongTimeoutStarted: 1,
			apparatus.EventStateChanged:       90,
		}, nil)

		summary, err := service.Summary(ctx)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(summary).To(gomega.Equal(domain.Summary{
			Rewards:         4,
			SynchPulls:      6,
			TrialsAbandoned: 2,
			LongTimeouts:    1,
		}))
	})

	ginkgo.It("should pass filters and pagination through", func() {
		filter := usecases.JournalFilter{Kind: apparatus.EventReward}
		page := usecases.Pagination{Limit: 5, Offset: 10}
		repository.EXPECT().FindAll(ctx, filter, page).Return([]domain.TrialEvent{{ID: "a"}}, 11, nil)

		events, total, err := service.Trials(ctx, filter, page)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(events).To(gomega.HaveLen(1))
		gomega.Expect(total).To(gomega.Equal(11))
	})

	ginkgo.It("should keep the not found error visible", func() {
		repository.EXPECT().Get(ctx, domain.ID("missing")).Return(domain.TrialEvent{}, usecases.ErrTrialEventNotFound)

		_, err := service.Trial(ctx, "missing")

		gomega.Expect(err).To(gomega.MatchError(usecases.ErrTrialEventNotFound))
	})

	ginkgo.It("should wrap repository failures", func() {
		repository.EXPECT().CountByKind(ctx).Return(nil, errors.New("locked"))

		_, err := service.Summary(ctx)

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("counting trial events")))
	})
})
