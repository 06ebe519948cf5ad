package middleware

import (
	"net/http"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/httputil"
)

// rejectRequest answers before the handler runs, in the same {error, code}
// shape the handlers use.
func rejectRequest(w http.ResponseWriter, status int, code apperrors.ErrorCode, message string) {
	httputil.WriteJSON(w, status, httputil.ErrorResponse{Error: message, Code: code})
}
