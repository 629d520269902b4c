package personremove_test

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

	"github.com/vlourenco/rodizio/internal/http-server/handlers/admin/personremove"
	"github.com/vlourenco/rodizio/internal/models"
	services "github.com/vlourenco/rodizio/internal/services/state"
)

type mockService struct {
	RemovePersonFunc func(ctx context.Context, name string) (*models.StateRecord, error)
}

func (m *mockService) RemovePerson(ctx context.Context, name string) (*models.StateRecord, error) {
	return m.RemovePersonFunc(ctx, name)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestPersonRemoveHandler(t *testing.T) {
	t.Run("success returns roster and ledger", func(t *testing.T) {
		service := &mockService{
			RemovePersonFunc: func(_ context.Context, name string) (*models.StateRecord, error) {
				require.Equal(t, "Bruno", name)
				return &models.StateRecord{
					People:    []string{"Ana"},
					PaidDates: map[string]string{"2024-06-01": "Ana"},
					Settings:  &models.Settings{RotationMode: models.RotationSequential},
				}, nil
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Bruno"})
		req := httptest.NewRequest(http.MethodDelete, "/admin/people", bytes.NewReader(body))
		w := httptest.NewRecorder()

		personremove.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp personremove.ResponseOK
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"Ana"}, resp.People)
		assert.Equal(t, "Ana", resp.PaidDates["2024-06-01"])
	})

	t.Run("person not found", func(t *testing.T) {
		service := &mockService{
			RemovePersonFunc: func(_ context.Context, _ string) (*models.StateRecord, error) {
				return nil, services.ErrPersonNotFound
			},
		}

		body, _ := json.Marshal(map[string]string{"name": "Nobody"})
		req := httptest.NewRequest(http.MethodDelete, "/admin/people", bytes.NewReader(body))
		w := httptest.NewRecorder()

		personremove.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "person not found")
	})
}
