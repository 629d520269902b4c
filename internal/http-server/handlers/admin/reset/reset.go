// Package reset реализует HTTP-обработчик сброса истории оплат.
//
// Перед сбросом делается снимок состояния; идентификатор снимка
// возвращается в ответе (null, если снимок не удался).
package reset

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/sl"
)

// ResponseOK ответ на сброс истории.
type ResponseOK struct {
	response.Response
	Message string  `json:"message"`
	Backup  *string `json:"backup"`
}

// Handler обрабатывает DELETE /admin/reset.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сброса истории.
type Service interface {
	ResetHistory(ctx context.Context) (backupID string, err error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	backupID, err := h.service.ResetHistory(r.Context())
	if err != nil {
		log.Error("failed to reset payment history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	resp := ResponseOK{
		Response: response.OK(),
		Message:  "payment history has been reset",
	}
	if backupID != "" {
		resp.Backup = &backupID
	}
	log.Info("payment history reset", slog.String("backup", backupID))
	render.JSON(w, r, resp)
}
