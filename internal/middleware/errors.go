package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wiissal/take-a-chef/internal/httperr"
)

// ExposeErrors marks requests whose internal error details may be returned.
func ExposeErrors(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			c.Set(httperr.ContextExposeErrors, true)
		}
		c.Next()
	}
}

// Recovery turns panics into the standard 500 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error().
			Interface("panic", rec).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		httperr.Internal(c, "internal_error", "Internal server error")
	})
}
