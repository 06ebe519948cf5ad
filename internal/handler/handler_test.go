package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/service"
	"github.com/brookfield-academy/site-server-go/internal/testutil"
)

const testSecret = "handler-test-session-secret-0123456789"

type testEnv struct {
	store  *testutil.Store
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.NewStore()
	gate := service.NewSessionGate(store.Sessions(), testSecret)
	authService := service.NewAuthService(store, store.Credentials(), store.Sessions(), gate, service.AuthOptions{
		SessionSecret:                  testSecret,
		RevokeSessionsOnPasswordChange: true,
	})
	dataService := service.NewAdminDataService(gate, store.Inquiries(), store.Gallery(), store.Content(), nil, nil)
	siteService := service.NewSiteService(store.Inquiries(), store.Gallery(), store.Content(), nil)

	r := chi.NewRouter()
	r.Mount("/functions/admin-auth", NewAuthHandler(authService).Routes())
	r.Mount("/functions/admin-data", NewDataHandler(dataService).Routes())
	r.Mount("/api", NewSiteHandler(siteService).Routes())

	return &testEnv{store: store, router: r}
}

func (e *testEnv) post(t *testing.T, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (e *testEnv) auth(t *testing.T, body map[string]any) (*httptest.ResponseRecorder, map[string]any) {
	return e.post(t, "/functions/admin-auth", body)
}

func (e *testEnv) data(t *testing.T, body map[string]any) (*httptest.ResponseRecorder, map[string]any) {
	return e.post(t, "/functions/admin-data", body)
}

func (e *testEnv) bootstrap(t *testing.T, password string) string {
	t.Helper()
	e.store.SeedAdmin("admin", model.PlaceholderHashPrefix+"provisioned")

	rec, _ := e.auth(t, map[string]any{"action": "init-password", "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := e.auth(t, map[string]any{"action": "login", "username": "admin", "password": password})
	require.Equal(t, http.StatusOK, rec.Code)
	return body["sessionToken"].(string)
}
