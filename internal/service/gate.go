package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/repository"
	"github.com/brookfield-academy/site-server-go/internal/util"
)

// Principal identifies the admin behind a validated session.
type Principal struct {
	AdminID   string
	SessionID string
}

// SessionValidator maps a bearer token to the acting admin or a uniform
// "Invalid or expired session" error.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*Principal, error)
}

// SessionGate is the read-only session check placed in front of every
// privileged operation. It never writes and never reads credentials.
type SessionGate struct {
	sessionRepo   repository.AdminSessionRepository
	sessionSecret string
	now           func() time.Time
}

func NewSessionGate(sessionRepo repository.AdminSessionRepository, sessionSecret string) *SessionGate {
	return &SessionGate{
		sessionRepo:   sessionRepo,
		sessionSecret: sessionSecret,
		now:           time.Now,
	}
}

func (g *SessionGate) Validate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.InvalidSession()
	}

	session, err := g.sessionRepo.FindByTokenHash(ctx, hashSessionToken(g.sessionSecret, token))
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if !session.IsActive(g.now()) {
		log.Ctx(ctx).Debug().Bool("found", session != nil).Msg("session rejected by gate")
		return nil, apperrors.InvalidSession()
	}

	return &Principal{AdminID: session.AdminID, SessionID: session.ID}, nil
}

func hashSessionToken(secret, token string) string {
	return util.HmacSHA256(secret, token)
}
