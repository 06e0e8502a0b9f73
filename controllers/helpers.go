package controllers

import (
	"errors"
	"strconv"

	"civireport/pkg/resp"
	"civireport/services"

	"github.com/gin-gonic/gin"
)

// respondErr maps service sentinel errors onto HTTP responses so every
// controller handles failures the same way.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		resp.Unauthorized(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
