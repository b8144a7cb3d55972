package parameterType

import (
	"strings"

	"github.com/latchbio-nfcore/rnadnavar/models/constants"
)

const (
	Unknown constants.ParameterType = "unknown"

	String    constants.ParameterType = "string"
	Integer   constants.ParameterType = "integer"
	Float     constants.ParameterType = "float"
	Boolean   constants.ParameterType = "boolean"
	File      constants.ParameterType = "file"
	Directory constants.ParameterType = "directory"
)

func CastToParameterType(text string) constants.ParameterType {
	switch strings.ToLower(text) {
	case "string", "str":
		return String
	case "integer", "int":
		return Integer
	case "float", "number":
		return Float
	case "boolean", "bool":
		return Boolean
	case "file":
		return File
	case "directory", "dir":
		return Directory
	default:
		return Unknown
	}
}

func IsKnownParameterType(text string) bool {
	return CastToParameterType(text) != Unknown
}

// IsPathType reports whether values of this type reference remote storage.
func IsPathType(t constants.ParameterType) bool {
	return t == File || t == Directory
}
