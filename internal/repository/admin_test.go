package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brookfield-academy/site-server-go/internal/model"
)

func TestAdminCredentialRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewAdminCredentialRepository(db.DB)
	ctx := context.Background()

	cred, err := repo.FindPrimary(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "admin", cred.Username)
	assert.True(t, cred.NeedsInit())

	t.Run("username lookup is case sensitive", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "ADMIN")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("initializes placeholder exactly once", func(t *testing.T) {
		ok, err := repo.InitializePasswordHash(ctx, cred.ID, "$2a$10$first")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.InitializePasswordHash(ctx, cred.ID, "$2a$10$second")
		require.NoError(t, err)
		assert.False(t, ok)

		found, err := repo.FindByID(ctx, cred.ID)
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$first", found.PasswordHash)
	})

	t.Run("updates password hash", func(t *testing.T) {
		require.NoError(t, repo.UpdatePasswordHash(ctx, cred.ID, "$2a$10$third"))

		found, err := repo.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$third", found.PasswordHash)
	})
}

func TestAdminSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	credRepo := NewAdminCredentialRepository(db.DB)
	repo := NewAdminSessionRepository(db.DB)
	ctx := context.Background()

	cred, err := credRepo.FindPrimary(ctx)
	require.NoError(t, err)

	ip := "203.0.113.7"
	active, err := repo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: "active-hash",
		AdminID:   cred.ID,
		ClientIP:  &ip,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, cred.ID, active.AdminID)

	_, err = repo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: "expired-hash",
		AdminID:   cred.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	t.Run("finds session by token hash", func(t *testing.T) {
		found, err := repo.FindByTokenHash(ctx, "active-hash")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, active.ID, found.ID)
	})

	t.Run("returns nil for unknown token hash", func(t *testing.T) {
		found, err := repo.FindByTokenHash(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("deletes only expired sessions", func(t *testing.T) {
		count, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		found, err := repo.FindByTokenHash(ctx, "active-hash")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("deletes other sessions of the admin", func(t *testing.T) {
		_, err := repo.Create(ctx, model.CreateAdminSessionParams{
			TokenHash: "other-hash",
			AdminID:   cred.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		count, err := repo.DeleteOthersForAdmin(ctx, cred.ID, active.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("deleting a missing token is not an error", func(t *testing.T) {
		require.NoError(t, repo.DeleteByTokenHash(ctx, "active-hash"))
		require.NoError(t, repo.DeleteByTokenHash(ctx, "active-hash"))
	})
}
