package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
)

const ContextIdentity = "identity"

type TokenParser interface {
	Parse(token string) (identity.Identity, error)
}

// AuthMiddleware resolves the bearer token into an identity and stores it on
// the context. Requests without a valid token never reach the handler.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "not authorized, no token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Unauthorized(c, "invalid_authorization_header", "not authorized, malformed token")
			return
		}

		id, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "not authorized, token failed")
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return identity.Identity{}, false
	}
	id, ok := v.(identity.Identity)
	return id, ok && id.Role.Valid()
}
