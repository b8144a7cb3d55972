package contexts

import (
	"github.com/labstack/echo"
	authz "github.com/latchbio-nfcore/rnadnavar/models/authorization"
	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
)

type (
	// "Helper" Context to pass into routes that need
	//  the configuration, the run history and other variables
	PipelineContext struct {
		echo.Context
		Config     *models.Config
		RunService *runs.RunService

		// authorization
		RequestedResource   authz.Resource
		RequiredPermissions authz.PermissionsList
	}
)
