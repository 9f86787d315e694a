package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/httpapi"
	"leverbox/internal/session/usecases"
	mockusecases "leverbox/test/unit/doubles/session/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("TrialController", func() {
	var (
		ctrl    *gomock.Controller
		service *mockusecases.MockJournalService
		router  *http.ServeMux
		rec     *httptest.ResponseRecorder
	)

	serve := func(target string) {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	}

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		service = mockusecases.NewMockJournalService(ctrl)
		router = http.NewServeMux()
		httpapi.NewTrialController(service).AddRoutes(router)
	})

	ginkgo.Context("GET /v1/trials", func() {
		ginkgo.It("should page through the journal with the kind filter", func() {
			service.EXPECT().
				Trials(gomock.Any(), usecases.JournalFilter{Kind: apparatus.EventReward}, usecases.Pagination{Limit: 2, Offset: 2}).
				Return([]domain.TrialEvent{{
					ID:          "7a1e",
					Kind:        apparatus.EventReward,
					Role:        apparatus.RoleSlave,
					State:       apparatus.StateReward,
					SessionTime: 90 * time.Second,
				}}, 3, nil)

			serve("/v1/trials?kind=reward&page=2&limit=2")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body struct {
				Data []struct {
					ID            string `json:"id"`
					Kind          string `json:"kind"`
					Role          string `json:"role"`
					SessionTimeMs int64  `json:"session_time_ms"`
				} `json:"data"`
				Pagination struct {
					Total      int `json:"total"`
					TotalPages int `json:"total_pages"`
				} `json:"pagination"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Data).To(gomega.HaveLen(1))
			gomega.Expect(body.Data[0].Kind).To(gomega.Equal("reward"))
			gomega.Expect(body.Data[0].Role).To(gomega.Equal("slave"))
			gomega.Expect(body.Data[0].SessionTimeMs).To(gomega.Equal(int64(90000)))
			gomega.Expect(body.Pagination.Total).To(gomega.Equal(3))
			gomega.Expect(body.Pagination.TotalPages).To(gomega.Equal(2))
		})

		ginkgo.It("should reject unknown kinds", func() {
			serve("/v1/trials?kind=bogus")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("unknown event kind"))
		})

		ginkgo.It("should report service failures", func() {
			service.EXPECT().Trials(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("boom"))

			serve("/v1/trials")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))
		})
	})

	ginkgo.Context("GET /v1/trials/{id}", func() {
		ginkgo.It("should return the event", func() {
			service.EXPECT().Trial(gomock.Any(), domain.ID("0b6f")).Return(domain.TrialEvent{ID: "0b6f", Kind: apparatus.EventTrialAbandoned}, nil)

			serve("/v1/trials/0b6f")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"kind":"trial_abandoned"`))
		})

		ginkgo.It("should answer not found", func() {
			service.EXPECT().Trial(gomock.Any(), gomock.Any()).Return(domain.TrialEvent{}, usecases.ErrTrialEventNotFound)

			serve("/v1/trials/missing")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("GET /v1/trials/summary", func() {
		ginkgo.It("should return the counts", func() {
			service.EXPECT().Summary(gomock.Any()).Return(domain.Summary{Rewards: 5, SynchPulls: 7, TrialsAbandoned: 1}, nil)

			serve("/v1/trials/summary")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]int
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("rewards", 5))
			gomega.Expect(body).To(gomega.HaveKeyWithValue("synch_pulls", 7))
			gomega.Expect(body).To(gomega.HaveKeyWithValue("trials_abandoned", 1))
		})
	})
})
