package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/middleware"
)

// ======================================================
// REQUEST HELPERS
// ======================================================

func currentIdentity(c *gin.Context) (identity.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "not authorized")
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return uint(v), true
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return fe.Field() + " failed on '" + fe.Tag() + "'"
	}
	return "invalid request body"
}
