package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brookfield-academy/site-server-go/internal/audit"
	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/service"
)

// Auth endpoint actions.
const (
	ActionCheckInit       = "check-init"
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionChangePassword  = "change-password"
	ActionInitPassword    = "init-password"
	ActionValidateSession = "validate-session"
)

type authRequest struct {
	Action       string `json:"action"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	NewPassword  string `json:"newPassword"`
	SessionToken string `json:"sessionToken"`
}

type loginResponse struct {
	Success      bool      `json:"success"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AuthHandler serves POST /functions/admin-auth, dispatching on the body's
// action field.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Handle)
	return r
}

func (h *AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	switch req.Action {
	case ActionCheckInit:
		h.checkInit(w, r)
	case ActionLogin:
		h.login(w, r, req)
	case ActionLogout:
		h.logout(w, r, req)
	case ActionChangePassword:
		h.changePassword(w, r, req)
	case ActionInitPassword:
		h.initPassword(w, r, req)
	case ActionValidateSession:
		h.validateSession(w, r, req)
	default:
		writeError(w, r, apperrors.InvalidAction())
	}
}

func (h *AuthHandler) checkInit(w http.ResponseWriter, r *http.Request) {
	needsInit, err := h.authService.CheckInit(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"needsInit": needsInit})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req authRequest) {
	result, err := h.authService.Login(r.Context(), req.Username, req.Password, clientInfo(r))
	if err != nil {
		if !apperrors.IsInternal(err) {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventLoginFailure,
				Details: map[string]interface{}{"username_fingerprint": audit.Fingerprint(req.Username)},
			})
		}
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, AdminID: result.AdminID})
	writeJSON(w, http.StatusOK, loginResponse{
		Success:      true,
		SessionToken: result.SessionToken,
		ExpiresAt:    result.ExpiresAt,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request, req authRequest) {
	h.authService.Logout(r.Context(), req.SessionToken)
	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	writeSuccess(w)
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request, req authRequest) {
	result, err := h.authService.ChangePassword(r.Context(), req.SessionToken, req.Password, req.NewPassword)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeWrongPassword {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventPasswordFailure})
		}
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventPasswordChange,
		AdminID: result.AdminID,
		Details: map[string]interface{}{"revoked_sessions": result.RevokedSessions},
	})
	writeSuccess(w)
}

func (h *AuthHandler) initPassword(w http.ResponseWriter, r *http.Request, req authRequest) {
	adminID, err := h.authService.InitPassword(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventPasswordInit, AdminID: adminID})
	writeSuccess(w)
}

func (h *AuthHandler) validateSession(w http.ResponseWriter, r *http.Request, req authRequest) {
	valid, err := h.authService.ValidateSession(r.Context(), req.SessionToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
