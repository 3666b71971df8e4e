package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-dispatch/internal/config"
	"github.com/jrsteele09/go-auth-dispatch/server"
	"github.com/jrsteele09/go-auth-dispatch/token"
	"github.com/jrsteele09/go-auth-dispatch/users"
	fakeuserrepo "github.com/jrsteele09/go-auth-dispatch/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "AdminPass123"
	userEmail     = "jane@example.com"
	userPassword  = "JanePass123"
)

type testEnv struct {
	api    *server.Server
	srv    *httptest.Server
	repo   users.UserRepo
	issuer *token.Issuer
	user   *users.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("ADMIN_EMAIL", adminEmail)
	t.Setenv("ADMIN_PASSWORD", adminPassword)
	t.Setenv("VERSION", "9.9.9")
	t.Setenv("CORS_ORIGINS", "https://app.example.com")

	repo := fakeuserrepo.NewFakeUserRepo()
	user := &users.User{Email: userEmail, Firstname: "Jane", Active: true, Editor: true}
	require.NoError(t, user.SetPassword(userPassword))
	require.NoError(t, repo.Upsert(user))

	issuer := token.NewIssuer(token.NewHMACSigner([]byte("test-secret")), "test", time.Hour)
	s, err := server.New(config.New(), repo, issuer)
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	return &testEnv{api: s, srv: srv, repo: repo, issuer: issuer, user: user}
}

func (e *testEnv) do(t *testing.T, method, path, authorization string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) login(t *testing.T, email, password string) server.AuthenticateResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, server.RouteAuthenticate, "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out server.AuthenticateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
