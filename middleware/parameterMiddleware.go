package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/models/dtos/errors"
	"github.com/latchbio-nfcore/rnadnavar/workflows"
)

/*
Echo middleware to ensure the `name` path parameter names a pipeline parameter
*/
func MandateKnownParameterName(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		if !workflows.IsKnownParameter(name) {
			return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(fmt.Sprintf("unknown parameter '%s'", name)))
		}

		return next(c)
	}
}
