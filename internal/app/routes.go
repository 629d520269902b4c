// Package app предоставляет маршруты приложения.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/fulldata"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/login"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/paidset"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/personadd"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/personremove"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/reset"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/settingsset"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/chatpost"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/data"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/health"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/nextperson"
	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/toggletoday"
	"github.com/vlourenco/rodizio/internal/http-server/mware"
	"github.com/vlourenco/rodizio/internal/http-server/response"
	authservice "github.com/vlourenco/rodizio/internal/services/auth"
	stateservice "github.com/vlourenco/rodizio/internal/services/state"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, stateService *stateservice.StateService, authService *authservice.AuthService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}),
		mware.MetricsMiddleware,
	)

	// Открытые конечные точки
	r.Get("/health", health.New(logger).ServeHTTP)
	r.Get("/data", data.New(logger, stateService).ServeHTTP)
	r.Get("/next-person", nextperson.New(logger, stateService).ServeHTTP)

	// Публичные мутации под rate limit
	r.Group(func(r chi.Router) {
		r.Use(mware.RateLimitMiddleware(logger))
		r.Patch("/paid/toggle-today", toggletoday.New(logger, stateService).ServeHTTP)
		r.Post("/chat", chatpost.New(logger, stateService).ServeHTTP)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(authService, logger))
			r.Get("/data", fulldata.New(logger, stateService).ServeHTTP)
			r.Post("/people", personadd.New(logger, stateService).ServeHTTP)
			r.Delete("/people", personremove.New(logger, stateService).ServeHTTP)
			r.Patch("/paid", paidset.New(logger, stateService).ServeHTTP)
			r.Delete("/reset", reset.New(logger, stateService).ServeHTTP)
			r.Patch("/settings", settingsset.New(logger, stateService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, response.Error("route not found"))
	})
}
