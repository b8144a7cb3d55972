package serviceInfo

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	serviceInfo "github.com/latchbio-nfcore/rnadnavar/models/constants/service-info"
	"github.com/latchbio-nfcore/rnadnavar/workflows"
)

// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	cfg := c.(*contexts.PipelineContext).Config

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pipeline": map[string]interface{}{
			"id":         serviceInfo.PIPELINE_ID,
			"parameters": len(workflows.PIPELINE_PARAMETERS),
			"profile":    cfg.Engine.Profile,
			"runHistory": c.(*contexts.PipelineContext).RunService.IsEnabled(),
		},
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    serviceInfo.SERVICE_TYPE_NO_VER,
			"version":  cfg.SemVer,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": "nf-core",
			"url":  "https://nf-co.re",
		},
		"contactUrl": cfg.ServiceContact,
		"version":    cfg.SemVer,
	})
}
