package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the launcher and it's
	associated services.
*/
type ParameterType string
type RunState string
type ValueKind int
