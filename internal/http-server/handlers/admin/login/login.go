// Package login реализует HTTP-обработчик входа администратора.
//
// При совпадении пароля возвращается подписанный JWT с ролью admin;
// при несовпадении — 401 с единым сообщением без деталей.
package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/sl"
	services "github.com/vlourenco/rodizio/internal/services/auth"
)

// Request входные данные для входа администратора.
type Request struct {
	Password string `json:"password" validate:"required"`
}

// ResponseOK ответ с выданным токеном.
type ResponseOK struct {
	response.Response
	Token string `json:"token"`
}

// Handler обрабатывает POST /admin/login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(rawPassword string) (string, error)
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
	const op = "handlers.admin.login"

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

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			log.Info("rejected login attempt")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect password"))
			return
		}
		log.Error("failed to issue token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("admin logged in")
	render.JSON(w, r, ResponseOK{
		Response: response.OK(),
		Token:    token,
	})
}
