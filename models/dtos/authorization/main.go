package authorization

import (
	"encoding/json"

	mauthz "github.com/latchbio-nfcore/rnadnavar/models/authorization"
)

type PermissionRequestDto struct {
	RequestedResource   mauthz.Resource
	RequiredPermissions mauthz.PermissionsList
}

func (p *PermissionRequestDto) MarshalJSON() ([]byte, error) {
	// - structure the request body using snake case
	res := map[string]interface{}{
		"requested_resource":   p.RequestedResource,
		"required_permissions": p.RequiredPermissions.Strings(),
	}
	return json.Marshal(&res)
}
