package middleware

import (
	"net/http"

	"github.com/brookfield-academy/site-server-go/internal/config"
	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
)

// BodyLimitMiddleware caps request bodies. Auth and data payloads are small
// JSON documents; image bytes go straight to object storage.
type BodyLimitMiddleware struct {
	maxSize int64
}

func NewBodyLimitMiddleware(maxSize int64) *BodyLimitMiddleware {
	if maxSize <= 0 {
		maxSize = config.MaxRequestBodyBytes
	}
	return &BodyLimitMiddleware{maxSize: maxSize}
}

func (m *BodyLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.ContentLength > m.maxSize {
			rejectRequest(w, http.StatusRequestEntityTooLarge, apperrors.ErrCodeValidation, "Request body too large")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, m.maxSize)
		next.ServeHTTP(w, r)
	})
}
