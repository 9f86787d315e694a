package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"leverbox/internal/infra/httpserver"
	"leverbox/internal/session/httpapi/internal"
	"leverbox/internal/session/usecases"
)

func NewStatusController(service usecases.StatusService) *StatusController {
	return &StatusController{service: service}
}

var _ httpserver.Controller = &StatusController{}

type StatusController struct {
	service usecases.StatusService
}

func (c *StatusController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/status", c.status())
}

func (c *StatusController) status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := c.service.Status(r.Context())
		if errors.Is(err, usecases.ErrStatusUnavailable) {
			httpserver.ReplyWithError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if err != nil {
			slog.Error("reading box status", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to read box status")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToStatusResponse(status))
	}
}
