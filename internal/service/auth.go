package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/brookfield-academy/site-server-go/internal/audit"
	"github.com/brookfield-academy/site-server-go/internal/config"
	"github.com/brookfield-academy/site-server-go/internal/database"
	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/repository"
	"github.com/brookfield-academy/site-server-go/internal/util"
)

// TxRunner runs fn inside a single database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

type AuthOptions struct {
	SessionSecret string
	// EncryptionKey, when set, encrypts session client info at rest.
	EncryptionKey                  string
	RevokeSessionsOnPasswordChange bool
}

type LoginResult struct {
	SessionToken string
	ExpiresAt    time.Time
	AdminID      string
}

type ChangePasswordResult struct {
	AdminID         string
	RevokedSessions int64
}

// AuthService owns every write to the admin credential and its sessions.
type AuthService struct {
	tx             TxRunner
	credentialRepo repository.AdminCredentialRepository
	sessionRepo    repository.AdminSessionRepository
	gate           SessionValidator
	opts           AuthOptions
	now            func() time.Time
}

func NewAuthService(
	tx TxRunner,
	credentialRepo repository.AdminCredentialRepository,
	sessionRepo repository.AdminSessionRepository,
	gate SessionValidator,
	opts AuthOptions,
) *AuthService {
	return &AuthService{
		tx:             tx,
		credentialRepo: credentialRepo,
		sessionRepo:    sessionRepo,
		gate:           gate,
		opts:           opts,
		now:            time.Now,
	}
}

// CheckInit reports whether the admin still has to choose a password.
func (s *AuthService) CheckInit(ctx context.Context) (bool, error) {
	cred, err := s.credentialRepo.FindPrimary(ctx)
	if err != nil {
		return false, apperrors.Database(err)
	}
	return cred.NeedsInit(), nil
}

// InitPassword sets the first real password. It is accepted only while the
// stored credential is still in its provisioned placeholder state.
func (s *AuthService) InitPassword(ctx context.Context, newPassword string) (adminID string, err error) {
	defer func() { authAttempts.WithLabelValues("init-password", outcome(err)).Inc() }()

	cred, err := s.credentialRepo.FindPrimary(ctx)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if cred == nil {
		// Nothing was provisioned, so there is no row to bring to life.
		return "", apperrors.Internal("admin credential is not provisioned")
	}
	if !cred.NeedsInit() {
		return "", apperrors.AlreadyInitialized()
	}
	if err := checkPasswordPolicy(newPassword); err != nil {
		return "", err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return "", apperrors.Internal("failed to hash password").WithCause(err)
	}

	ok, err := s.credentialRepo.InitializePasswordHash(ctx, cred.ID, hash)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if !ok {
		// Another bootstrap call won the race.
		return "", apperrors.AlreadyInitialized()
	}

	return cred.ID, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string, client model.ClientInfo) (result *LoginResult, err error) {
	defer func() { authAttempts.WithLabelValues("login", outcome(err)).Inc() }()

	cred, err := s.credentialRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if cred == nil || cred.NeedsInit() {
		util.BurnPasswordCheck(password)
		return nil, apperrors.InvalidCredentials()
	}
	if !util.CheckPasswordHash(password, cred.PasswordHash) {
		return nil, apperrors.InvalidCredentials()
	}

	if n, err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to sweep expired admin sessions")
	} else if n > 0 {
		log.Ctx(ctx).Debug().Int64("deleted", n).Msg("swept expired admin sessions")
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate session token").WithCause(err)
	}

	expiresAt := s.now().Add(config.AdminSessionLifetime)
	_, err = s.sessionRepo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: hashSessionToken(s.opts.SessionSecret, token),
		AdminID:   cred.ID,
		ClientIP:  s.sealClientField(ctx, client.IP),
		UserAgent: s.sealClientField(ctx, client.UserAgent),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	return &LoginResult{SessionToken: token, ExpiresAt: expiresAt, AdminID: cred.ID}, nil
}

// Logout deletes the session behind token. Unknown tokens are not an error,
// and a storage failure is only logged: the caller forgets the token either way.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessionRepo.DeleteByTokenHash(ctx, hashSessionToken(s.opts.SessionSecret, token)); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete admin session on logout")
	}
}

func (s *AuthService) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (result *ChangePasswordResult, err error) {
	defer func() { authAttempts.WithLabelValues("change-password", outcome(err)).Inc() }()

	principal, err := s.gate.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	cred, err := s.credentialRepo.FindByID(ctx, principal.AdminID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if cred == nil || cred.NeedsInit() {
		return nil, apperrors.InvalidSession()
	}

	if !util.CheckPasswordHash(currentPassword, cred.PasswordHash) {
		return nil, apperrors.WrongCurrentPassword()
	}
	if err := checkPasswordPolicy(newPassword); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password").WithCause(err)
	}

	result = &ChangePasswordResult{AdminID: cred.ID}
	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.credentialRepo.WithTx(tx).UpdatePasswordHash(ctx, cred.ID, hash); err != nil {
			return err
		}
		if !s.opts.RevokeSessionsOnPasswordChange {
			return nil
		}
		n, err := s.sessionRepo.WithTx(tx).DeleteOthersForAdmin(ctx, cred.ID, principal.SessionID)
		if err != nil {
			return err
		}
		result.RevokedSessions = n
		return nil
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if result.RevokedSessions > 0 {
		audit.Log(ctx, audit.Event{
			Type:    audit.EventSessionsRevoked,
			AdminID: cred.ID,
			Details: map[string]interface{}{"count": result.RevokedSessions},
		})
	}

	return result, nil
}

// ValidateSession reports whether token is a live session. Only storage
// failures are returned as errors.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (bool, error) {
	_, err := s.gate.Validate(ctx, token)
	if err == nil {
		return true, nil
	}
	if apperrors.IsInternal(err) {
		return false, err
	}
	return false, nil
}

func checkPasswordPolicy(password string) error {
	if len(password) < config.MinPasswordLength {
		return apperrors.WeakPassword(config.MinPasswordLength)
	}
	if len(password) > config.MaxPasswordBytes {
		return apperrors.PasswordTooLong(config.MaxPasswordBytes)
	}
	return nil
}

func (s *AuthService) sealClientField(ctx context.Context, value string) *string {
	if value == "" {
		return nil
	}
	if s.opts.EncryptionKey == "" {
		return &value
	}
	sealed, err := util.Encrypt(s.opts.EncryptionKey, value)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to encrypt session client info, dropping it")
		return nil
	}
	return &sealed
}
