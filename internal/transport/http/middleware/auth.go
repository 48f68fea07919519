package middleware

import (
	"net/http"
	"strings"

	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"

	// IdentityKey is the gin context key under which Auth stores the
	// verified *auth.Identity.
	IdentityKey = "identity"
)

// TokenVerifier is the subset of auth.Issuer the gate needs.
type TokenVerifier interface {
	Verify(raw string) (*auth.Identity, error)
}

// Auth is the bearer-token gate. A request with no Authorization header is
// rejected with 401 before anything else runs; a header that is present but
// malformed, tampered, or expired is rejected with 403. On success the
// decoded identity is attached to the gin context.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}

		ident, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}

		c.Set(IdentityKey, ident)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Auth, or nil on open routes.
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*auth.Identity)
	return ident
}
