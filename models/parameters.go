package models

import (
	"encoding/json"

	"github.com/latchbio-nfcore/rnadnavar/models/constants"
	vk "github.com/latchbio-nfcore/rnadnavar/models/constants/value-kind"
)

type ParameterSpec struct {
	Name         string                  `json:"name" yaml:"name"`
	Type         constants.ParameterType `json:"type" yaml:"type"`
	Optional     bool                    `json:"optional" yaml:"optional"`
	Default      interface{}             `json:"default" yaml:"default"`
	SectionTitle string                  `json:"section_title,omitempty" yaml:"section_title,omitempty"`
	Description  string                  `json:"description,omitempty" yaml:"description,omitempty"`
	Output       bool                    `json:"output,omitempty" yaml:"output,omitempty"`
}

// A parameter is required when it is neither optional nor defaulted.
func (p ParameterSpec) IsRequired() bool {
	return !p.Optional && p.Default == nil
}

// Value is one resolved parameter value: Absent, Bool or Scalar.
type Value struct {
	Kind constants.ValueKind
	flag bool
	text string
}

func Absent() Value {
	return Value{Kind: vk.Absent}
}

func Bool(b bool) Value {
	return Value{Kind: vk.Bool, flag: b}
}

// Scalar holds the string form of any present non-boolean value.
func Scalar(s string) Value {
	return Value{Kind: vk.Scalar, text: s}
}

func (v Value) IsAbsent() bool { return v.Kind == vk.Absent }
func (v Value) Flag() bool     { return v.Kind == vk.Bool && v.flag }
func (v Value) Text() string   { return v.text }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case vk.Bool:
		return json.Marshal(v.flag)
	case vk.Scalar:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

type ResolvedParameters map[string]Value

type ValidationError struct {
	Parameter string `json:"parameter"`
	Message   string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Parameter + ": " + e.Message
}
