// Package mware содержит HTTP middleware приложения.
//
// JWTMiddleware проверяет наличие и валидность токена администратора
// в заголовке Authorization и кладёт claims в контекст запроса.
// Причина отказа при невалидном токене наружу не различается.
package mware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vlourenco/rodizio/internal/http-server/response"
	"github.com/vlourenco/rodizio/internal/lib/jwt"
	"github.com/vlourenco/rodizio/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AdminClaims ключ, под которым claims администратора лежат в контексте.
const AdminClaims Key = "adminClaims"

// Service описывает интерфейс проверки токена администратора.
type Service interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// JWTMiddleware возвращает middleware, пропускающий запрос дальше только
// с валидным bearer-токеном администратора.
func JWTMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access token required"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ValidateToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}
			ctx := context.WithValue(r.Context(), AdminClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
