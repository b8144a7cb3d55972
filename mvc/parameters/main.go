package parameters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	linq "github.com/ahmetb/go-linq"
	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/metrics"
	"github.com/latchbio-nfcore/rnadnavar/models"
	serviceInfo "github.com/latchbio-nfcore/rnadnavar/models/constants/service-info"
	"github.com/latchbio-nfcore/rnadnavar/models/dtos"
	e "github.com/latchbio-nfcore/rnadnavar/models/dtos/errors"
	"github.com/latchbio-nfcore/rnadnavar/services/flags"
	"github.com/latchbio-nfcore/rnadnavar/services/launcher"
	paramService "github.com/latchbio-nfcore/rnadnavar/services/parameters"
	"github.com/latchbio-nfcore/rnadnavar/utils"
	"github.com/latchbio-nfcore/rnadnavar/workflows"
)

// GetParameters lists the schema in flag order. `section` narrows the list
// to one section and `format=yaml` switches the encoding.
func GetParameters(c echo.Context) error {
	logx.Log.Debug().Msg("GetParameters hit!")
	metrics.SchemaRequests.WithLabelValues("parameters").Inc()

	specs := workflows.PIPELINE_PARAMETERS
	if section := c.QueryParam("section"); section != "" {
		filtered := []models.ParameterSpec{}
		linq.From(specs).WhereT(func(p models.ParameterSpec) bool {
			return strings.EqualFold(workflows.SectionOf(p.Name), section)
		}).ToSlice(&filtered)
		specs = filtered
	}

	if strings.EqualFold(c.QueryParam("format"), "yaml") {
		out, err := utils.MarshalSchemaYaml(specs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, e.CreateSimpleInternalServerError(err.Error()))
		}
		return c.Blob(http.StatusOK, "application/x-yaml", out)
	}

	return c.JSON(http.StatusOK, dtos.ParametersResponseDto{
		Pipeline:   string(serviceInfo.PIPELINE_ID),
		Count:      len(specs),
		Parameters: specs,
	})
}

func GetParameterSections(c echo.Context) error {
	logx.Log.Debug().Msg("GetParameterSections hit!")
	metrics.SchemaRequests.WithLabelValues("sections").Inc()

	sections := []dtos.SectionDto{}
	linq.From(workflows.Sections()).SelectT(func(s workflows.Section) dtos.SectionDto {
		return dtos.SectionDto{Title: s.Title, Parameters: s.Parameters}
	}).ToSlice(&sections)

	return c.JSON(http.StatusOK, dtos.SectionsResponseDto{
		Pipeline: string(serviceInfo.PIPELINE_ID),
		Sections: sections,
	})
}

// GetParameter expects MandateKnownParameterName to have run first.
func GetParameter(c echo.Context) error {
	metrics.SchemaRequests.WithLabelValues("parameter").Inc()

	spec, _ := workflows.GetParameter(c.Param("name"))
	return c.JSON(http.StatusOK, spec)
}

func ValidateParameters(c echo.Context) error {
	logx.Log.Debug().Msg("ValidateParameters hit!")
	metrics.SchemaRequests.WithLabelValues("validate").Inc()

	raw, err := decodeValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(err.Error()))
	}

	validationErrors := paramService.Validate(raw)
	if len(validationErrors) > 0 {
		metrics.ValidationFailures.Inc()
		return c.JSON(http.StatusBadRequest, dtos.ValidationResponseDto{
			Valid:  false,
			Errors: validationErrors,
		})
	}

	return c.JSON(http.StatusOK, dtos.ValidationResponseDto{
		Valid:  true,
		Errors: []models.ValidationError{},
	})
}

// GetCommandLine previews the engine invocation a launch with the posted
// values would produce. Nothing is provisioned or executed.
func GetCommandLine(c echo.Context) error {
	logx.Log.Debug().Msg("GetCommandLine hit!")
	cfg := c.(*contexts.PipelineContext).Config

	raw, err := decodeValues(c)
	if err != nil {
		metrics.CommandLinePreviews.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(err.Error()))
	}

	emitDefaults := cfg.Engine.EmitDefaults
	if qp := c.QueryParam("emitDefaults"); qp != "" {
		if parsed, pErr := strconv.ParseBool(qp); pErr == nil {
			emitDefaults = parsed
		} else {
			metrics.CommandLinePreviews.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(fmt.Sprintf("invalid emitDefaults value %q", qp)))
		}
	}

	resolved, err := paramService.Resolve(raw, emitDefaults)
	if err != nil {
		metrics.CommandLinePreviews.WithLabelValues("rejected").Inc()
		if errors.Is(err, paramService.ErrUnknownParameter) || errors.Is(err, paramService.ErrUnsupportedValue) {
			return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, e.CreateSimpleInternalServerError(err.Error()))
	}

	metrics.CommandLinePreviews.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, dtos.CommandLineResponseDto{
		CommandLine: launcher.BuildCommandLine(cfg, resolved),
		Flags:       flags.Translate(resolved),
		Resolved:    resolved,
	})
}

// an empty body counts as no values at all
func decodeValues(c echo.Context) (map[string]interface{}, error) {
	raw := map[string]interface{}{}

	decoder := json.NewDecoder(c.Request().Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		return nil, fmt.Errorf("invalid parameter document: %w", err)
	}
	return raw, nil
}
