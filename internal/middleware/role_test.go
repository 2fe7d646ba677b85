package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"asset_inventory/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequireRolesRejectsNonAdmin(t *testing.T) {
	issuer := newIssuer(t, "secret")
	tok, err := issuer.Issue(testIdentity)
	require.NoError(t, err)

	w := doGet(protectedEngine(issuer, AdminOnlyMiddleware()), "Bearer "+tok)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "administradores")
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	issuer := newIssuer(t, "secret")
	admin := testIdentity
	admin.Role = domain.RoleAdmin
	tok, err := issuer.Issue(admin)
	require.NoError(t, err)

	w := doGet(protectedEngine(issuer, AdminOnlyMiddleware()), "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)

	userTok, err := issuer.Issue(testIdentity)
	require.NoError(t, err)
	w = doGet(protectedEngine(issuer, RequireRoles(domain.RoleAdmin, domain.RoleUser)), "Bearer "+userTok)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/protected", AdminOnlyMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
