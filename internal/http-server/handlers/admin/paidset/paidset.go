// Package paidset реализует HTTP-обработчик правки журнала оплат
// за произвольную дату. Пустое или отсутствующее имя снимает запись.
package paidset

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/sl"
	services "github.com/vlourenco/rodizio/internal/services/state"
)

// Request входные данные правки журнала.
// Name может быть null — тогда запись за дату снимается.
type Request struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name"`
}

// ResponseOK ответ с обновлённым журналом оплат.
type ResponseOK struct {
	response.Response
	PaidDates map[string]string `json:"paidDates"`
}

// Handler обрабатывает PATCH /admin/paid.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики журнала оплат.
type Service interface {
	SetPaid(ctx context.Context, date, name string) (map[string]string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.paidset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	paidDates, err := h.service.SetPaid(r.Context(), req.Date, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadDate):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date format"))
		case errors.Is(err, services.ErrInvalidName):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("person not found"))
		default:
			log.Error("failed to update paid dates", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	render.JSON(w, r, ResponseOK{
		Response:  response.OK(),
		PaidDates: paidDates,
	})
}
