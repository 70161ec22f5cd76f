package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockforum/internal/config"
	"stockforum/internal/identity"
)

// IdentityKey is the context key holding the resolved caller identity.
const IdentityKey = "callerIdentity"

// SessionHeader carries the client-supplied anonymous session ID.
const SessionHeader = "X-Session-ID"

// ResolveIdentity is the optional-auth counterpart to AuthMiddleware: it
// never rejects a request. A valid bearer token yields an authenticated
// identity; anything else downgrades to an anonymous fingerprint built from
// the session header, the client IP, or a one-shot placeholder.
func ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.Split(header, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		ident := identity.Resolve(token, c.GetHeader(SessionHeader), c.ClientIP(), []byte(config.Get().JWTSecret))
		c.Set(IdentityKey, ident)
		c.Next()
	}
}

// CallerIdentity returns the identity resolved by ResolveIdentity. The
// second return is false when the middleware did not run.
func CallerIdentity(c *gin.Context) (identity.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return identity.Identity{}, false
	}
	ident, ok := v.(identity.Identity)
	return ident, ok
}
