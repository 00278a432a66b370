package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-insights/internal/loader"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("bad"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{MethodNotAllowed("no"), http.StatusMethodNotAllowed},
		{RateLimit("slow down"), http.StatusTooManyRequests},
		{ServiceUnavailable("down"), http.StatusServiceUnavailable},
		{DataUnavailable(nil), http.StatusServiceUnavailable},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk: %w", os.ErrNotExist)
	err := Wrap(cause, CodeInternal, "failed")

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "caused by")
}

func TestLoadHint(t *testing.T) {
	missing := &loader.LoadError{Path: "/data/orders.xlsx", Op: "open", Err: os.ErrNotExist}
	sheet := &loader.LoadError{Path: "o.xlsx", Op: "select sheet", Err: loader.ErrSheetNotFound}
	format := &loader.LoadError{Path: "o.json", Op: "detect format", Err: loader.ErrUnsupportedFormat}

	assert.Contains(t, LoadHint(nil), "not been loaded")
	assert.Contains(t, LoadHint(fmt.Errorf("load orders: %w", missing)), `"/data/orders.xlsx"`)
	assert.Contains(t, LoadHint(sheet), "sheet name")
	assert.Contains(t, LoadHint(format), ".xlsx or .csv")
	assert.Contains(t, LoadHint(stderrors.New("other")), "DATA_FILE")
}

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("app error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, logger, DataUnavailable(nil), "req-1")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp struct {
			Error   AppError `json:"error"`
			Success bool     `json:"success"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Success)
		assert.Equal(t, CodeDataUnavailable, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, logger, fmt.Errorf("handler: %w", NotFound("missing")), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, logger, stderrors.New("boom"), "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestWriteSuccessWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithHeaders(w, map[string]int{"n": 1}, map[string]string{"Cache-Control": "public, max-age=300"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"n":1},"success":true}`, w.Body.String())
}
