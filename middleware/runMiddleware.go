package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models/dtos/errors"
	"github.com/latchbio-nfcore/rnadnavar/utils"
)

/*
Echo middleware to ensure the `id` path parameter is a valid run id (uuid)
*/
func MandateRunId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !utils.IsValidUUID(id) {
			logx.Log.Debug().Str("id", id).Msg("invalid run id")

			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf("invalid run id %s - please provide a valid uuid", id)))
		}

		return next(c)
	}
}
