package toggletoday_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/toggletoday"
	services "github.com/vlourenco/rodizio/internal/services/state"
)

type mockService struct {
	ToggleTodayFunc func(ctx context.Context, name string) (map[string]string, error)
}

func (m *mockService) ToggleToday(ctx context.Context, name string) (map[string]string, error) {
	return m.ToggleTodayFunc(ctx, name)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestToggleTodayHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockService{
			ToggleTodayFunc: func(_ context.Context, name string) (map[string]string, error) {
				require.Equal(t, "Ana", name)
				return map[string]string{"2024-06-01": "Ana"}, nil
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Ana"})
		req := httptest.NewRequest(http.MethodPatch, "/paid/toggle-today", bytes.NewReader(body))
		w := httptest.NewRecorder()

		toggletoday.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp toggletoday.ResponseOK
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Ana", resp.PaidDates["2024-06-01"])
	})

	t.Run("unknown name", func(t *testing.T) {
		service := &mockService{
			ToggleTodayFunc: func(_ context.Context, _ string) (map[string]string, error) {
				return nil, services.ErrInvalidName
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Nobody"})
		req := httptest.NewRequest(http.MethodPatch, "/paid/toggle-today", bytes.NewReader(body))
		w := httptest.NewRecorder()

		toggletoday.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid name")
	})

	t.Run("missing name", func(t *testing.T) {
		service := &mockService{
			ToggleTodayFunc: func(_ context.Context, _ string) (map[string]string, error) {
				t.Fatal("service should not be called on validation error")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/paid/toggle-today", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()

		toggletoday.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		service := &mockService{
			ToggleTodayFunc: func(_ context.Context, _ string) (map[string]string, error) {
				return nil, errors.New("save failed")
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Ana"})
		req := httptest.NewRequest(http.MethodPatch, "/paid/toggle-today", bytes.NewReader(body))
		w := httptest.NewRecorder()

		toggletoday.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}
