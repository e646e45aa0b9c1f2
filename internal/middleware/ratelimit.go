package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wiissal/take-a-chef/internal/httperr"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles per authenticated user, or per client IP before auth.
// Limiter failures let the request through.
func RateLimit(l Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id, ok := CurrentIdentity(c); ok {
			key = fmt.Sprintf("user:%d", id.UserID)
		}

		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			httperr.TooManyRequests(c, "rate_limited", "too many requests, try again later")
			return
		}

		c.Next()
	}
}
