package personadd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/personadd"
	services "github.com/vlourenco/rodizio/internal/services/state"
)

type mockService struct {
	AddPersonFunc func(ctx context.Context, name string) ([]string, error)
}

func (m *mockService) AddPerson(ctx context.Context, name string) ([]string, error) {
	return m.AddPersonFunc(ctx, name)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestPersonAddHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service := &mockService{
			AddPersonFunc: func(_ context.Context, name string) ([]string, error) {
				require.Equal(t, "Bruno", name)
				return []string{"Ana", "Bruno"}, nil
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Bruno"})
		req := httptest.NewRequest(http.MethodPost, "/admin/people", bytes.NewReader(body))
		w := httptest.NewRecorder()

		personadd.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp personadd.ResponseOK
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"Ana", "Bruno"}, resp.People)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service := &mockService{
			AddPersonFunc: func(_ context.Context, _ string) ([]string, error) {
				return nil, services.ErrPersonExists
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Ana"})
		req := httptest.NewRequest(http.MethodPost, "/admin/people", bytes.NewReader(body))
		w := httptest.NewRecorder()

		personadd.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "person already exists")
	})

	t.Run("oversized name", func(t *testing.T) {
		service := &mockService{
			AddPersonFunc: func(_ context.Context, _ string) ([]string, error) {
				return nil, services.ErrNameTooLong
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "x"})
		req := httptest.NewRequest(http.MethodPost, "/admin/people", bytes.NewReader(body))
		w := httptest.NewRecorder()

		personadd.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name is too long")
	})
}
