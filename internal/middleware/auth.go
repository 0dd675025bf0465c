package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smart_health/internal/authz"
	"smart_health/internal/identity"
	"smart_health/internal/token"
)

const identityKey = "identity"

// authenticate verifies the bearer token and stores the identity in the
// request context. It aborts with 401 and returns false on failure; it
// never advances the handler chain itself.
func authenticate(c *gin.Context) (authz.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return authz.Identity{}, false
	}

	raw := strings.TrimPrefix(authHeader, "Bearer ")
	id, err := identity.Verify(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			return authz.Identity{}, false
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return authz.Identity{}, false
	}

	c.Set(identityKey, id)
	return id, true
}

// RequireAuth ensures a valid bearer token is present and stores the
// verified identity in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole ensures the token is valid and the caller holds one of the
// given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c)
		if !ok {
			return
		}

		if err := authz.Require(id, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireAuth.
func CurrentIdentity(c *gin.Context) authz.Identity {
	id, _ := c.MustGet(identityKey).(authz.Identity)
	return id
}
