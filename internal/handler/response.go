package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brookfield-academy/site-server-go/internal/audit"
	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/httputil"
	"github.com/brookfield-academy/site-server-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err)
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}
	return nil
}

func clientInfo(r *http.Request) model.ClientInfo {
	return model.ClientInfo{IP: audit.ClientIP(r), UserAgent: r.UserAgent()}
}
