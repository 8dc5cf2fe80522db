package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"

	"shoplet-backend/models"
)

// Context keys set by Authenticate.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

const tokenFooter = "shoplet"

// Auth issues and verifies PASETO session tokens and gates routes by role.
type Auth struct {
	secretKey []byte
}

func NewAuth(secretKey []byte) *Auth {
	return &Auth{secretKey: secretKey}
}

// IssueToken mints a 24h session token carrying the user id and role.
func (a *Auth) IssueToken(userID, role string) (string, error) {
	now := time.Now()
	token := paseto.JSONToken{
		Subject:    userID,
		IssuedAt:   now,
		Expiration: now.Add(24 * time.Hour),
	}
	token.Set("role", role)
	return paseto.NewV2().Encrypt(a.secretKey, token, tokenFooter)
}

// Authenticate requires a valid Bearer token and stores its subject and role
// on the request context.
func (a *Auth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed token"})
			return
		}

		var token paseto.JSONToken
		var footer string
		if err := paseto.NewV2().Decrypt(header[len(prefix):], a.secretKey, &token, &footer); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if err := token.Validate(); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			return
		}

		c.Set(ContextUserID, token.Subject)
		c.Set(ContextRole, token.Get("role"))
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Runs after Authenticate.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets a user act on their own record and admins on any.
func (a *Auth) RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("id") != c.GetString(ContextUserID) && c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
