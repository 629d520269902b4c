// Package nextperson реализует HTTP-обработчик выбора следующего плательщика.
package nextperson

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/sl"
)

// Handler обрабатывает GET /next-person.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выбора плательщика.
type Service interface {
	NextPerson(ctx context.Context) (name string, ok bool, err error)
}

// ResponseOK ответ с именем следующего плательщика.
// NextPerson равен null, когда роспись пуста.
type ResponseOK struct {
	response.Response
	NextPerson *string `json:"nextPerson"`
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.nextperson"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name, ok, err := h.service.NextPerson(r.Context())
	if err != nil {
		log.Error("failed to compute next person", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	resp := ResponseOK{Response: response.OK()}
	if ok {
		resp.NextPerson = &name
	}
	render.JSON(w, r, resp)
}
