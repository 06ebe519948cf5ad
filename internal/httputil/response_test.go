package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing token", apperrors.AuthRequired(), http.StatusUnauthorized, "Authentication required"},
		{"bad session", apperrors.InvalidSession(), http.StatusUnauthorized, "Invalid or expired session"},
		{"bad credentials", apperrors.InvalidCredentials(), http.StatusUnauthorized, "Invalid credentials"},
		{"bad status", apperrors.InvalidStatus(), http.StatusBadRequest, "Invalid status"},
		{"bad action", apperrors.InvalidAction(), http.StatusBadRequest, "Invalid action"},
		{"already initialized", apperrors.AlreadyInitialized(), http.StatusConflict, "Password already initialized"},
		{"not found", apperrors.NotFound("Inquiry"), http.StatusNotFound, "Inquiry not found"},
		{"unavailable", apperrors.Unavailable("Image uploads are not configured"), http.StatusServiceUnavailable, "Image uploads are not configured"},
		{"database", apperrors.Database(errors.New("pq: relation does not exist")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Error)
		})
	}
}

func TestWriteErrorHidesCauses(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), apperrors.Database(errors.New("password=hunter2")))

	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), "DATABASE_ERROR")
}

func TestWriteErrorLogsOnRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("request_id", "req-42").Logger()

	req := httptest.NewRequest(http.MethodPost, "/functions/admin-data", nil)
	req = req.WithContext(logger.WithContext(req.Context()))

	t.Run("internal failures carry the request id", func(t *testing.T) {
		buf.Reset()
		WriteError(httptest.NewRecorder(), req, apperrors.Database(errors.New("connection reset")))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, "error", entry["level"])
		assert.Equal(t, "/functions/admin-data", entry["path"])
		assert.Contains(t, entry["error"], "connection reset")
	})

	t.Run("client errors are not logged", func(t *testing.T) {
		buf.Reset()
		WriteError(httptest.NewRecorder(), req, apperrors.InvalidSession())
		assert.Zero(t, buf.Len())
	})
}
