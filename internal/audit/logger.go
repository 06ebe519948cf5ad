package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess    EventType = "login_success"
	EventLoginFailure    EventType = "login_failure"
	EventLogout          EventType = "logout"
	EventPasswordInit    EventType = "password_init"
	EventPasswordChange  EventType = "password_change"
	EventPasswordFailure EventType = "password_change_failure"
	EventSessionsRevoked EventType = "sessions_revoked"
	EventAuthFailure     EventType = "auth_failure"
	EventInquiryUpdate   EventType = "inquiry_status_update"
	EventInquiryDelete   EventType = "inquiry_delete"
	EventGalleryCreate   EventType = "gallery_create"
	EventGalleryUpdate   EventType = "gallery_update"
	EventGalleryDelete   EventType = "gallery_delete"
	EventContentUpdate   EventType = "content_update"
	EventUploadIssued    EventType = "upload_url_issued"
)

type Event struct {
	Type      EventType
	AdminID   string
	TargetID  string
	IP        string
	UserAgent string
	Details   map[string]interface{}
}

func Log(ctx context.Context, event Event) {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &log.Logger
	}

	child := logger.With().
		Str("audit", "security").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.AdminID != "" {
		child = child.With().Str("admin_id", event.AdminID).Logger()
	}
	if event.TargetID != "" {
		child = child.With().Str("target_id", event.TargetID).Logger()
	}
	if event.IP != "" {
		child = child.With().Str("ip", event.IP).Logger()
	}
	if event.UserAgent != "" {
		child = child.With().Str("user_agent", event.UserAgent).Logger()
	}

	logEvent := child.Info()
	for k, v := range event.Details {
		logEvent = addField(logEvent, k, v)
	}
	logEvent.Msg("security audit event")
}

func addField(e *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}

func LogFromRequest(r *http.Request, event Event) {
	event.IP = ClientIP(r)
	event.UserAgent = r.UserAgent()
	Log(r.Context(), event)
}

// Fingerprint returns a short, stable digest of a caller-supplied value that
// must not be written to the log as-is, such as a submitted username.
func Fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:6])
}

// ClientIP returns the best-effort originating address of r. It is only
// suitable for audit records, never for access decisions.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
