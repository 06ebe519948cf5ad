package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/brookfield-academy/site-server-go/internal/database"
	"github.com/brookfield-academy/site-server-go/internal/model"
)

type AdminCredentialRepository interface {
	// FindPrimary returns the deployment's single admin credential, or nil
	// when none has been provisioned.
	FindPrimary(ctx context.Context) (*model.AdminCredential, error)
	FindByID(ctx context.Context, id string) (*model.AdminCredential, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminCredential, error)
	// InitializePasswordHash replaces the hash only while it is still the
	// placeholder. It reports false when the credential was already set.
	InitializePasswordHash(ctx context.Context, id string, passwordHash string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AdminCredentialRepository
}

type adminCredentialRepo struct {
	db database.DBTX
}

func NewAdminCredentialRepository(db *sqlx.DB) AdminCredentialRepository {
	return &adminCredentialRepo{db: db}
}

func (r *adminCredentialRepo) WithTx(tx *sqlx.Tx) AdminCredentialRepository {
	return &adminCredentialRepo{db: tx}
}

func (r *adminCredentialRepo) FindPrimary(ctx context.Context) (*model.AdminCredential, error) {
	var cred model.AdminCredential
	err := r.db.GetContext(ctx, &cred, `
		SELECT * FROM admin_credentials
		ORDER BY created_at ASC
		LIMIT 1
	`)
	return HandleNotFound(&cred, err)
}

func (r *adminCredentialRepo) FindByID(ctx context.Context, id string) (*model.AdminCredential, error) {
	var cred model.AdminCredential
	err := r.db.GetContext(ctx, &cred, `SELECT * FROM admin_credentials WHERE id = $1`, id)
	return HandleNotFound(&cred, err)
}

func (r *adminCredentialRepo) FindByUsername(ctx context.Context, username string) (*model.AdminCredential, error) {
	var cred model.AdminCredential
	err := r.db.GetContext(ctx, &cred, `SELECT * FROM admin_credentials WHERE username = $1`, username)
	return HandleNotFound(&cred, err)
}

func (r *adminCredentialRepo) InitializePasswordHash(ctx context.Context, id string, passwordHash string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admin_credentials SET
			password_hash = $2,
			updated_at = NOW()
		WHERE id = $1
		AND (password_hash = '' OR password_hash LIKE $3 || '%')
	`, id, passwordHash, model.PlaceholderHashPrefix)
	return rowsChanged(result, err)
}

func (r *adminCredentialRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_credentials SET
			password_hash = $2,
			updated_at = NOW()
		WHERE id = $1
	`, id, passwordHash)
	return err
}

// Admin Session Repository

type AdminSessionRepository interface {
	// FindByTokenHash returns the session row even when it has expired;
	// callers decide validity against their own clock.
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error)
	Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteOthersForAdmin(ctx context.Context, adminID string, keepSessionID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AdminSessionRepository
}

type adminSessionRepo struct {
	db database.DBTX
}

func NewAdminSessionRepository(db *sqlx.DB) AdminSessionRepository {
	return &adminSessionRepo{db: db}
}

func (r *adminSessionRepo) WithTx(tx *sqlx.Tx) AdminSessionRepository {
	return &adminSessionRepo{db: tx}
}

func (r *adminSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	var session model.AdminSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM admin_sessions WHERE token_hash = $1
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *adminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	var session model.AdminSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO admin_sessions (token_hash, admin_id, client_ip, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.TokenHash, params.AdminID, params.ClientIP, params.UserAgent, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *adminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *adminSessionRepo) DeleteOthersForAdmin(ctx context.Context, adminID string, keepSessionID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM admin_sessions
		WHERE admin_id = $1 AND id <> $2
	`, adminID, keepSessionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *adminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
