package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextExposeErrors is set on the gin context when internal error details
// may be returned to the client (development mode).
const ContextExposeErrors = "exposeErrors"

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// Respond writes err using the envelope. Business errors map through their
// kind; anything else is a 500 whose cause is attached to the gin context
// for the access log and only echoed in development.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		Write(c, be.Kind.Status(), be.Code, be.Message)
		return
	}

	_ = c.Error(err)

	body := HTTPError{
		Code:    "internal_error",
		Message: "Internal server error",
	}
	if c.GetBool(ContextExposeErrors) {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
