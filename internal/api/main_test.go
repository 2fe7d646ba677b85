package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"asset_inventory/internal/domain"
	"asset_inventory/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testEnv struct {
	router *gin.Engine
	users  *memUsers
	assets *memAssets
	cache  *memCache
	tokens *utils.TokenIssuer
	hasher *utils.PasswordHasher
}

func newTestEnv(t *testing.T, configure ...func(*Deps)) *testEnv {
	t.Helper()
	tokens, err := utils.NewTokenIssuer(utils.TokenConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	env := &testEnv{
		users:  newMemUsers(),
		assets: newMemAssets(),
		cache:  newMemCache(),
		tokens: tokens,
		hasher: utils.NewPasswordHasher(bcrypt.MinCost),
	}
	deps := Deps{
		Users:  env.users,
		Assets: env.assets,
		Hasher: env.hasher,
		Tokens: tokens,
		Cache:  NewListCache(env.cache, time.Minute),
	}
	for _, fn := range configure {
		fn(&deps)
	}
	env.router = NewRouter(deps)
	return env
}

// do sends a JSON request, with a bearer token when token is not empty
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedUser stores a user with a hashed password directly in the fake store
func (e *testEnv) seedUser(t *testing.T, email, password string, role domain.Role) domain.User {
	t.Helper()
	hash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	u := domain.User{Name: "Test " + string(role), Email: email, Password: hash, Role: role}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return u
}

func (e *testEnv) tokenFor(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := e.tokens.Issue(u.Identity())
	require.NoError(t, err)
	return tok
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.tokenFor(t, e.seedUser(t, "root@example.com", "rootpass", domain.RoleAdmin))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireMessage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.Equal(t, message, decode[map[string]string](t, w)["message"])
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/nothing", nil, "")
	requireMessage(t, w, http.StatusNotFound, "No se pudo encontrar esta ruta.")
}

func TestCORSPreflightOnAPIRoute(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) { d.CORSOrigins = []string{"http://localhost:3000"} })
	req := httptest.NewRequest(http.MethodOptions, "/api/users/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
