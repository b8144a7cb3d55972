package valueKind

import "github.com/latchbio-nfcore/rnadnavar/models/constants"

const (
	Absent constants.ValueKind = iota
	Bool
	Scalar
)
