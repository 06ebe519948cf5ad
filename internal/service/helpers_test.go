package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/testutil"
	"github.com/brookfield-academy/site-server-go/internal/util"
)

const testSecret = "test-session-secret-with-enough-length"

type fixture struct {
	store *testutil.Store
	gate  *SessionGate
	auth  *AuthService
	now   time.Time
}

// newFixture wires the auth stack over an in-memory store with a frozen clock.
func newFixture(t *testing.T, opts AuthOptions) *fixture {
	t.Helper()

	f := &fixture{
		store: testutil.NewStore(),
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	f.store.Now = clock

	if opts.SessionSecret == "" {
		opts.SessionSecret = testSecret
	}
	f.gate = NewSessionGate(f.store.Sessions(), opts.SessionSecret)
	f.gate.now = clock
	f.auth = NewAuthService(f.store, f.store.Credentials(), f.store.Sessions(), f.gate, opts)
	f.auth.now = clock
	return f
}

func (f *fixture) seedAdmin(t *testing.T, password string) model.AdminCredential {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)
	return f.store.SeedAdmin("admin", hash)
}

func (f *fixture) login(t *testing.T, password string) *LoginResult {
	t.Helper()
	res, err := f.auth.Login(context.Background(), "admin", password, model.ClientInfo{})
	require.NoError(t, err)
	return res
}
