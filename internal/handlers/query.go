package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

// optionalUintQuery reads an optional positive id from the query string and
// writes a 400 when it is malformed.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.Respond(c, httperr.ErrValidation(name, "invalid_format"))
		return nil, false
	}

	v := uint(n)
	return &v, true
}
