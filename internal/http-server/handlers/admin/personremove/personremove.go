// Package personremove реализует HTTP-обработчик удаления участника.
//
// Удаление каскадно вычищает записи участника из журнала оплат и
// возвращает индекс ротации в границы новой росписи.
package personremove

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
	"github.com/vlourenco/rodizio/internal/models"
	services "github.com/vlourenco/rodizio/internal/services/state"
)

// Request входные данные удаления участника.
type Request struct {
	Name string `json:"name" validate:"required"`
}

// ResponseOK ответ с обновлённой росписью и журналом оплат.
type ResponseOK struct {
	response.Response
	People    []string          `json:"people"`
	PaidDates map[string]string `json:"paidDates"`
}

// Handler обрабатывает DELETE /admin/people.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики росписи.
type Service interface {
	RemovePerson(ctx context.Context, name string) (*models.StateRecord, error)
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
	const op = "handlers.admin.personremove"

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

	rec, err := h.service.RemovePerson(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("name is required"))
		case errors.Is(err, services.ErrPersonNotFound):
			log.Info("person not found", slog.String("name", req.Name))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("person not found"))
		default:
			log.Error("failed to remove person", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("person removed", slog.String("name", req.Name))
	render.JSON(w, r, ResponseOK{
		Response:  response.OK(),
		People:    rec.People,
		PaidDates: rec.PaidDates,
	})
}
