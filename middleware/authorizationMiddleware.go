package middleware

import (
	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	authzModels "github.com/latchbio-nfcore/rnadnavar/models/authorization"
	authzConstants "github.com/latchbio-nfcore/rnadnavar/models/constants/authorization"
)

func ViewWorkflowPermissionAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.PipelineContext)
		addResourceEverything(gc)
		addPermissions(gc, authzConstants.VIEW, authzConstants.WORKFLOW)
		return next(gc)
	}
}
func AnalyzeWorkflowPermissionAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.PipelineContext)
		addResourceEverything(gc)
		addPermissions(gc, authzConstants.ANALYZE, authzConstants.WORKFLOW)
		return next(gc)
	}
}
func QueryDataPermissionAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.PipelineContext)
		addResourceEverything(gc)
		addPermissions(gc, authzConstants.QUERY, authzConstants.DATA)
		return next(gc)
	}
}

// -- helper functions
func addResourceEverything(gc *contexts.PipelineContext) {
	gc.RequestedResource = authzModels.ResourceEverything{
		Everything: true,
	}
}
func addPermissions(gc *contexts.PipelineContext, verb authzConstants.PermissionVerb, noun authzConstants.PermissionNoun) {
	gc.RequiredPermissions = authzModels.PermissionsList{{
		Verb: verb,
		Noun: noun,
	}}
}
