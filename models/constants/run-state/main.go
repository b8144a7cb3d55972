package runState

import "github.com/latchbio-nfcore/rnadnavar/models/constants"

const (
	Queued  constants.RunState = "Queued"
	Running constants.RunState = "Running"
	Done    constants.RunState = "Done"
	Error   constants.RunState = "Error"
)

// IsTerminal reports whether no further transitions follow this state.
func IsTerminal(s constants.RunState) bool {
	return s == Done || s == Error
}
