package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/httpserver"
	"leverbox/internal/session/domain"
	"leverbox/internal/session/httpapi/internal"
	"leverbox/internal/session/usecases"

	"go.opentelemetry.io/otel/attribute"
)

const (
	listTrialsErrMessage = "failed to list trial events"
	getTrialErrMessage   = "failed to get trial event"
	summaryErrMessage    = "failed to summarize trial events"
)

func NewTrialController(service usecases.JournalService) *TrialController {
	return &TrialController{service: service}
}

var _ httpserver.Controller = &TrialController{}

type TrialController struct {
	service usecases.JournalService
}

func (c *TrialController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/trials", c.list())
	router.Handle("GET /v1/trials/summary", c.summary())
	router.Handle("GET /v1/trials/{id}", c.get())
}

func (c *TrialController) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter usecases.JournalFilter
		if kind := httpserver.GetQueryParam(r, "kind"); kind != "" {
			parsed, err := apparatus.ParseEventKind(kind)
			if err != nil {
				httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			filter.Kind = parsed
			httpserver.GetSpanFromContext(r).SetAttributes(attribute.String("trial.kind", kind))
		}

		params := httpserver.ExtractPaginationParams(r)
		events, total, err := c.service.Trials(r.Context(), filter, usecases.Pagination{
			Limit:  params.Limit,
			Offset: params.Offset(),
		})
		if err != nil {
			slog.Error("listing trial events", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listTrialsErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.ToTrialEventResponses(events), total, params)
	}
}

func (c *TrialController) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		httpserver.GetSpanFromContext(r).SetAttributes(attribute.String("trial.id", id))
		event, err := c.service.Trial(r.Context(), domain.ID(id))
		if errors.Is(err, usecases.ErrTrialEventNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, "trial event not found")
			return
		}
		if err != nil {
			slog.Error("getting trial event", slog.String("id", id), slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, getTrialErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToTrialEventResponse(event))
	}
}

func (c *TrialController) summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := c.service.Summary(r.Context())
		if err != nil {
			slog.Error("summarizing trial events", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, summaryErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToSummaryResponse(summary))
	}
}
