package flags

import (
	"github.com/latchbio-nfcore/rnadnavar/models"
	vk "github.com/latchbio-nfcore/rnadnavar/models/constants/value-kind"
	"github.com/latchbio-nfcore/rnadnavar/workflows"
)

const flagPrefix = "--"

// Flag renders one parameter. Absent values and false booleans render
// nothing; there is no negative form.
func Flag(name string, v models.Value) []string {
	switch v.Kind {
	case vk.Bool:
		if v.Flag() {
			return []string{flagPrefix + name}
		}
		return nil
	case vk.Scalar:
		return []string{flagPrefix + name, v.Text()}
	default:
		return nil
	}
}

// Translate renders every resolved parameter in schema order. Names the
// schema does not know are not rendered.
func Translate(params models.ResolvedParameters) []string {
	tokens := []string{}
	for _, p := range workflows.PIPELINE_PARAMETERS {
		v, ok := params[p.Name]
		if !ok {
			continue
		}
		tokens = append(tokens, Flag(p.Name, v)...)
	}
	return tokens
}
