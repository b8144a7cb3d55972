package authorization

type PermissionVerb string
type PermissionNoun string

const (
	QUERY   PermissionVerb = "query"
	VIEW    PermissionVerb = "view"
	ANALYZE PermissionVerb = "analyze"
	DELETE  PermissionVerb = "delete"
)

const (
	DATA     PermissionNoun = "data"
	WORKFLOW PermissionNoun = "workflow"
)
