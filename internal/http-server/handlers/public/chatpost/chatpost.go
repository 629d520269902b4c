// Package chatpost реализует HTTP-обработчик отправки сообщения в чат.
package chatpost

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

// Request входные данные сообщения чата.
type Request struct {
	UserName string `json:"userName" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// ResponseOK ответ с актуальным содержимым чата.
type ResponseOK struct {
	response.Response
	Chat []models.ChatMessage `json:"chat"`
}

// Handler обрабатывает POST /chat.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики чата.
type Service interface {
	PostMessage(ctx context.Context, userName, text string) ([]models.ChatMessage, error)
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
	const op = "handlers.public.chatpost"

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

	chat, err := h.service.PostMessage(r.Context(), req.UserName, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user name and text are required"))
		case errors.Is(err, services.ErrMessageTooLong):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("message is too long"))
		default:
			log.Error("failed to post message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ResponseOK{
		Response: response.OK(),
		Chat:     chat,
	})
}
