// Package settingsset реализует HTTP-обработчик переключения режима ротации.
package settingsset

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

// Request входные данные переключения режима ротации.
type Request struct {
	RotationMode string `json:"rotationMode" validate:"required"`
}

// ResponseOK ответ с актуальными настройками.
type ResponseOK struct {
	response.Response
	Settings *models.Settings `json:"settings"`
}

// Handler обрабатывает PATCH /admin/settings.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики настроек.
type Service interface {
	SetRotationMode(ctx context.Context, mode string) (*models.Settings, error)
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
	const op = "handlers.admin.settingsset"

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

	settings, err := h.service.SetRotationMode(r.Context(), req.RotationMode)
	if err != nil {
		if errors.Is(err, services.ErrBadRotationMode) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid rotation mode"))
			return
		}
		log.Error("failed to update settings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("rotation mode updated", slog.String("mode", req.RotationMode))
	render.JSON(w, r, ResponseOK{
		Response: response.OK(),
		Settings: settings,
	})
}
