package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplet-backend/models"
)

const testKey = "abcdefghijklmnopqrstuvwxyz012345"

func probeRouter(auth *Auth, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{auth.Authenticate()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserID),
			"role":    c.GetString(ContextRole),
		})
	})
	r.GET("/probe", handlers...)
	r.GET("/users/:id", handlers...)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_ValidToken(t *testing.T) {
	auth := NewAuth([]byte(testKey))
	token, err := auth.IssueToken("42", models.RoleCustomer)
	require.NoError(t, err)

	w := get(probeRouter(auth), "/probe", token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"42"`)
	assert.Contains(t, w.Body.String(), `"role":"customer"`)
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	auth := NewAuth([]byte(testKey))
	r := probeRouter(auth)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/probe", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_WrongKey(t *testing.T) {
	other := NewAuth([]byte("00000000000000000000000000000000"))
	token, err := other.IssueToken("42", models.RoleCustomer)
	require.NoError(t, err)

	auth := NewAuth([]byte(testKey))
	w := get(probeRouter(auth), "/probe", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	auth := NewAuth([]byte(testKey))

	expired := paseto.JSONToken{
		Subject:    "42",
		IssuedAt:   time.Now().Add(-48 * time.Hour),
		Expiration: time.Now().Add(-24 * time.Hour),
	}
	expired.Set("role", models.RoleCustomer)
	token, err := paseto.NewV2().Encrypt([]byte(testKey), expired, tokenFooter)
	require.NoError(t, err)

	w := get(probeRouter(auth), "/probe", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRequireAdmin(t *testing.T) {
	auth := NewAuth([]byte(testKey))
	r := probeRouter(auth, auth.RequireAdmin())

	adminToken, err := auth.IssueToken("1", models.RoleAdmin)
	require.NoError(t, err)
	customerToken, err := auth.IssueToken("2", models.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/probe", adminToken).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/probe", customerToken).Code)
}

func TestRequireSelfOrAdmin(t *testing.T) {
	auth := NewAuth([]byte(testKey))
	r := probeRouter(auth, auth.RequireSelfOrAdmin())

	selfToken, err := auth.IssueToken("7", models.RoleCustomer)
	require.NoError(t, err)
	otherToken, err := auth.IssueToken("8", models.RoleCustomer)
	require.NoError(t, err)
	adminToken, err := auth.IssueToken("1", models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/users/7", selfToken).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/users/7", otherToken).Code)
	assert.Equal(t, http.StatusOK, get(r, "/users/7", adminToken).Code)
}
