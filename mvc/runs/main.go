package runs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models/dtos"
	e "github.com/latchbio-nfcore/rnadnavar/models/dtos/errors"
	runService "github.com/latchbio-nfcore/rnadnavar/services/runs"
)

func GetRuns(c echo.Context) error {
	logx.Log.Debug().Msg("GetRuns hit!")
	rz := c.(*contexts.PipelineContext).RunService

	size := 0
	if qp := c.QueryParam("size"); qp != "" {
		parsed, err := strconv.Atoi(qp)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(fmt.Sprintf("invalid size %q", qp)))
		}
		size = parsed
	}

	records, err := rz.List(c.Request().Context(), size)
	if err != nil {
		return respondWithRunError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.RunsResponseDto{
		Count:   len(records),
		Results: records,
	})
}

// GetRun expects MandateRunId to have validated the id.
func GetRun(c echo.Context) error {
	logx.Log.Debug().Msg("GetRun hit!")
	rz := c.(*contexts.PipelineContext).RunService

	record, err := rz.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondWithRunError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

func respondWithRunError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, runService.ErrRunNotFound):
		return c.JSON(http.StatusNotFound, e.CreateSimpleNotFound(err.Error()))
	case errors.Is(err, runService.ErrRunHistoryDisabled):
		return c.JSON(http.StatusServiceUnavailable, e.CreateSimpleServiceUnavailable(err.Error()))
	default:
		logx.Log.Error().Err(err).Msg("run history lookup failed")
		return c.JSON(http.StatusInternalServerError, e.CreateSimpleInternalServerError(err.Error()))
	}
}
