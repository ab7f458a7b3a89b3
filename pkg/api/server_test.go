package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	authhandlers "github.com/cbodonnell/seafarer/pkg/auth/handlers"
	authproviders "github.com/cbodonnell/seafarer/pkg/auth/providers"
	"github.com/cbodonnell/seafarer/pkg/messages"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(t *testing.T, loginRate rate.Limit, loginBurst int) http.Handler {
	t.Helper()
	ctx := context.Background()
	repository, err := repositories.NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(ctx) })

	provider := authproviders.NewJWTAuthProvider("s3cret", time.Hour)
	return NewRouter(NewAPIServerOptions{
		AllowOrigin:  "http://localhost:3000",
		AuthProvider: provider,
		AuthHandler:  authhandlers.NewLocalAuthHandler(repository, provider),
		Repository:   repository,
		LoginRate:    loginRate,
		LoginBurst:   loginBurst,
	})
}

func do(t *testing.T, router http.Handler, method string, path string, token string, body interface{}) (*httptest.ResponseRecorder, *messages.Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	env := &messages.Envelope{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), env))
	}
	return rec, env
}

func TestRouter_saveLifecycle(t *testing.T) {
	router := newTestRouter(t, rate.Inf, 1)
	credentials := &messages.LoginRequest{Email: "diver@example.com", Password: "pearls!"}

	rec, env := do(t, router, http.MethodPost, "/auth/register", "", credentials)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = do(t, router, http.MethodPost, "/auth/login", "", credentials)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := &messages.LoginPayload{}
	require.NoError(t, env.Decode(login))
	token := login.Token

	rec, env = do(t, router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := &models.Profile{}
	require.NoError(t, env.Decode(profile))
	assert.Equal(t, "diver@example.com", profile.Email)
	assert.Equal(t, 0, profile.TotalScore)

	rec, env = do(t, router, http.MethodGet, "/saves", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	saves := messages.ListSavesPayload{}
	require.NoError(t, env.Decode(&saves))
	assert.Empty(t, saves)

	rec, env = do(t, router, http.MethodPost, "/saves", token, &messages.CreateSaveRequest{Payload: []byte(`{"level":2}`)})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := &messages.CreateSavePayload{}
	require.NoError(t, env.Decode(created))
	assert.NotEmpty(t, created.ID)

	rec, env = do(t, router, http.MethodGet, "/saves", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, env.Decode(&saves))
	require.Len(t, saves, 1)
	assert.Equal(t, created.ID, saves[0].ID)
	assert.Equal(t, []byte(`{"level":2}`), saves[0].Payload)
	assert.Empty(t, saves[0].UserID)

	rec, _ = do(t, router, http.MethodDelete, "/saves/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, router, http.MethodDelete, "/saves/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Save not found", env.Message)
}

func TestRouter_savesAreScopedToUser(t *testing.T) {
	router := newTestRouter(t, rate.Inf, 1)

	register := func(email string) string {
		_, env := do(t, router, http.MethodPost, "/auth/register", "", &messages.LoginRequest{Email: email, Password: "pearls!"})
		payload := &messages.LoginPayload{}
		require.NoError(t, env.Decode(payload))
		return payload.Token
	}
	alice := register("alice@example.com")
	bob := register("bob@example.com")

	_, env := do(t, router, http.MethodPost, "/saves", alice, &messages.CreateSaveRequest{Payload: []byte("a")})
	created := &messages.CreateSavePayload{}
	require.NoError(t, env.Decode(created))

	rec, _ := do(t, router, http.MethodDelete, "/saves/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = do(t, router, http.MethodGet, "/saves", bob, nil)
	saves := messages.ListSavesPayload{}
	require.NoError(t, env.Decode(&saves))
	assert.Empty(t, saves)
}

func TestRouter_failures(t *testing.T) {
	router := newTestRouter(t, rate.Inf, 1)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       interface{}
		wantStatus int
		wantMsg    string
	}{
		{name: "missing token", method: http.MethodGet, path: "/saves", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "bad token", method: http.MethodGet, path: "/auth/me", token: "garbage", wantStatus: http.StatusUnauthorized, wantMsg: "Session expired, please log in again"},
		{name: "bad credentials", method: http.MethodPost, path: "/auth/login", body: &messages.LoginRequest{Email: "nobody@example.com", Password: "pearls!"}, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid credentials"},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantMsg: "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestRouter_loginRateLimit(t *testing.T) {
	router := newTestRouter(t, rate.Every(time.Hour), 2)
	credentials := &messages.LoginRequest{Email: "nobody@example.com", Password: "pearls!"}

	for i := 0; i < 2; i++ {
		rec, _ := do(t, router, http.MethodPost, "/auth/login", "", credentials)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec, env := do(t, router, http.MethodPost, "/auth/login", "", credentials)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many attempts, try again later", env.Message)
}

func TestRouter_preflightAndMetrics(t *testing.T) {
	router := newTestRouter(t, rate.Inf, 1)

	rec, _ := do(t, router, http.MethodOptions, "/saves", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	do(t, router, http.MethodGet, "/saves", "", nil)

	rec, _ = do(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `seafarer_http_requests_total{method="GET",route="/saves",status_code="401"} 1`)
}
