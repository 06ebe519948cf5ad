package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/repository"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminSession), args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminSession), args.Error(1)
}

func (m *mockSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockSessionRepo) DeleteOthersForAdmin(ctx context.Context, adminID string, keepSessionID string) (int64, error) {
	args := m.Called(ctx, adminID, keepSessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) WithTx(tx *sqlx.Tx) repository.AdminSessionRepository {
	return m
}

func TestSessionGate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := "raw-token"

	newGate := func(repo *mockSessionRepo) *SessionGate {
		g := NewSessionGate(repo, testSecret)
		g.now = func() time.Time { return now }
		return g
	}

	t.Run("accepts a session expiring in the future", func(t *testing.T) {
		repo := new(mockSessionRepo)
		repo.On("FindByTokenHash", ctx, hashSessionToken(testSecret, token)).
			Return(&model.AdminSession{ID: "s1", AdminID: "a1", ExpiresAt: now.Add(time.Second)}, nil)

		p, err := newGate(repo).Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "a1", p.AdminID)
		assert.Equal(t, "s1", p.SessionID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a session expiring exactly now", func(t *testing.T) {
		repo := new(mockSessionRepo)
		repo.On("FindByTokenHash", ctx, mock.Anything).
			Return(&model.AdminSession{ID: "s1", AdminID: "a1", ExpiresAt: now}, nil)

		_, err := newGate(repo).Validate(ctx, token)
		assert.Equal(t, apperrors.ErrCodeInvalidSession, apperrors.GetCode(err))
	})

	t.Run("unknown, expired and empty tokens fail identically", func(t *testing.T) {
		repo := new(mockSessionRepo)
		repo.On("FindByTokenHash", ctx, hashSessionToken(testSecret, "unknown")).Return(nil, nil)
		repo.On("FindByTokenHash", ctx, hashSessionToken(testSecret, "expired")).
			Return(&model.AdminSession{ExpiresAt: now.Add(-time.Hour)}, nil)
		gate := newGate(repo)

		var messages []string
		for _, tok := range []string{"unknown", "expired", ""} {
			_, err := gate.Validate(ctx, tok)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidSession, appErr.Code)
			messages = append(messages, appErr.Message)
		}
		assert.Equal(t, []string{apperrors.MsgInvalidSession, apperrors.MsgInvalidSession, apperrors.MsgInvalidSession}, messages)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		repo := new(mockSessionRepo)
		repo.On("FindByTokenHash", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := newGate(repo).Validate(ctx, token)
		assert.True(t, apperrors.IsInternal(err))
	})

	t.Run("never looks up the raw token", func(t *testing.T) {
		repo := new(mockSessionRepo)
		repo.On("FindByTokenHash", ctx, mock.Anything).Return(nil, nil)

		_, _ = newGate(repo).Validate(ctx, token)
		repo.AssertNotCalled(t, "FindByTokenHash", ctx, token)
	})
}
