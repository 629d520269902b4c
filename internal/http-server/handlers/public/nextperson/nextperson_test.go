package nextperson_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/http-server/handlers/public/nextperson"
)

type mockService struct {
	NextPersonFunc func(ctx context.Context) (string, bool, error)
}

func (m *mockService) NextPerson(ctx context.Context) (string, bool, error) {
	return m.NextPersonFunc(ctx)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestNextPersonHandler(t *testing.T) {
	t.Run("returns next payer", func(t *testing.T) {
		service := &mockService{
			NextPersonFunc: func(_ context.Context) (string, bool, error) {
				return "Ana Beatriz", true, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/next-person", nil)
		w := httptest.NewRecorder()

		nextperson.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp nextperson.ResponseOK
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.NextPerson)
		assert.Equal(t, "Ana Beatriz", *resp.NextPerson)
	})

	t.Run("empty roster yields null", func(t *testing.T) {
		service := &mockService{
			NextPersonFunc: func(_ context.Context) (string, bool, error) {
				return "", false, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/next-person", nil)
		w := httptest.NewRecorder()

		nextperson.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"nextPerson":null`)
	})

	t.Run("storage failure", func(t *testing.T) {
		service := &mockService{
			NextPersonFunc: func(_ context.Context) (string, bool, error) {
				return "", false, errors.New("disk gone")
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/next-person", nil)
		w := httptest.NewRecorder()

		nextperson.New(makeLogger(), service).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
