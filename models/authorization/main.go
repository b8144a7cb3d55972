package authorization

import (
	"fmt"

	c "github.com/latchbio-nfcore/rnadnavar/models/constants/authorization"
)

type Resource interface{}
type ResourceEverything struct {
	Everything bool `json:"everything"`
}

type Permission struct {
	Verb c.PermissionVerb
	Noun c.PermissionNoun
}

// serialized as "verb:noun", the form the policy service expects
func (p Permission) String() string {
	return fmt.Sprintf("%s:%s", p.Verb, p.Noun)
}

type PermissionsList []Permission

func (l PermissionsList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p.String())
	}
	return out
}
