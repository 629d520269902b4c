// Package data реализует HTTP-обработчик публичного среза состояния.
//
// Настройки ротации наружу не отдаются; фронтенд видит только роспись,
// журнал оплат и чат.
package data

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/sl"
	"github.com/vlourenco/rodizio/internal/models"
)

// Handler обрабатывает GET /data.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения состояния.
type Service interface {
	PublicSnapshot(ctx context.Context) (*models.PublicSnapshot, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.data"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snap, err := h.service.PublicSnapshot(r.Context())
	if err != nil {
		log.Error("failed to load state", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	render.JSON(w, r, snap)
}
