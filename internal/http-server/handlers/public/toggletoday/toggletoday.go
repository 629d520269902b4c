// Package toggletoday реализует HTTP-обработчик переключения оплаты за сегодня.
package toggletoday

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

// Request входные данные переключения оплаты.
type Request struct {
	Name string `json:"name" validate:"required"`
}

// ResponseOK ответ с обновлённым журналом оплат.
type ResponseOK struct {
	response.Response
	PaidDates map[string]string `json:"paidDates"`
}

// Handler обрабатывает PATCH /paid/toggle-today.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики журнала оплат.
type Service interface {
	ToggleToday(ctx context.Context, name string) (map[string]string, error)
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
	const op = "handlers.public.toggletoday"

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

	paidDates, err := h.service.ToggleToday(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrInvalidName) {
			log.Info("rejected toggle for unknown name", slog.String("name", req.Name))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid name"))
			return
		}
		log.Error("failed to toggle payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, ResponseOK{
		Response:  response.OK(),
		PaidDates: paidDates,
	})
}
