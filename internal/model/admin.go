package model

import (
	"strings"
	"time"
)

// PlaceholderHashPrefix marks a credential provisioned without a real
// password. Such a credential can only be brought to life via init-password.
const PlaceholderHashPrefix = "$placeholder$"

type AdminCredential struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NeedsInit reports whether the credential is still in the bootstrap state.
func (c *AdminCredential) NeedsInit() bool {
	return c == nil || IsPlaceholderHash(c.PasswordHash)
}

func IsPlaceholderHash(hash string) bool {
	return hash == "" || strings.HasPrefix(hash, PlaceholderHashPrefix)
}

type AdminSession struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	AdminID   string    `db:"admin_id" json:"adminId"`
	ClientIP  *string   `db:"client_ip" json:"-"`
	UserAgent *string   `db:"user_agent" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// IsActive reports whether the session is still usable at now. A session
// whose expiry equals now is already expired.
func (s *AdminSession) IsActive(now time.Time) bool {
	return s != nil && s.ExpiresAt.After(now)
}

type CreateAdminSessionParams struct {
	TokenHash string
	AdminID   string
	ClientIP  *string
	UserAgent *string
	ExpiresAt time.Time
}

// ClientInfo is best-effort request metadata kept for audit only.
type ClientInfo struct {
	IP        string
	UserAgent string
}
