package handler

import (
	"strconv"

	"github.com/eventease/manager/internal/errdef"

	"github.com/gin-gonic/gin"
)

// GetPathParameter parses a numeric path parameter. On failure a bad request
// error is attached to the context and ok is false, so callers just return.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	value := c.Param(parameter)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("path parameter %q isn't a valid id", parameter))
		return 0, false
	}
	return uint(id), true
}
