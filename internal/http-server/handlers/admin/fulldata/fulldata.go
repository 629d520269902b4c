// Package fulldata реализует HTTP-обработчик полного документа состояния,
// включая настройки ротации. Доступен только администратору.
package fulldata

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

// Handler обрабатывает GET /admin/data.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения полного документа.
type Service interface {
	FullRecord(ctx context.Context) (*models.StateRecord, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.fulldata"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rec, err := h.service.FullRecord(r.Context())
	if err != nil {
		log.Error("failed to load state", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	render.JSON(w, r, rec)
}
