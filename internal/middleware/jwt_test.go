package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset_inventory/internal/domain"
	"asset_inventory/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testIdentity = domain.Identity{ID: "0b8f5a8e-2f7e-4c1e-a7a0-6e0f7f7c3d11", Email: "eva@example.com", Role: domain.RoleUser}

func newIssuer(t *testing.T, secret string) *utils.TokenIssuer {
	t.Helper()
	issuer, err := utils.NewTokenIssuer(utils.TokenConfig{Secret: secret, TTL: time.Hour})
	require.NoError(t, err)
	return issuer
}

// protectedEngine echoes the identity seen by the downstream handler.
func protectedEngine(tokens TokenParser, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, id)
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	issuer := newIssuer(t, "secret")
	foreign, err := newIssuer(t, "other-secret").Issue(testIdentity)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-token"},
		{"foreign signature", "Bearer " + foreign},
	}

	r := protectedEngine(issuer)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Contains(t, w.Body.String(), "message")
			require.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestJWTAuthMiddlewareAttachesIdentity(t *testing.T) {
	issuer := newIssuer(t, "secret")
	tok, err := issuer.Issue(testIdentity)
	require.NoError(t, err)

	r := protectedEngine(issuer)
	for i := 0; i < 2; i++ {
		w := doGet(r, "Bearer "+tok)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"userId":"`+testIdentity.ID+`","email":"eva@example.com","role":"user"}`, w.Body.String())
	}
}
