package dtos

import (
	"time"

	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/latchbio-nfcore/rnadnavar/models/indexes"
)

// -- General
type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}

// -- Parameters
type ParametersResponseDto struct {
	Pipeline   string                 `json:"pipeline"`
	Count      int                    `json:"count"`
	Parameters []models.ParameterSpec `json:"parameters"`
}

type SectionDto struct {
	Title      string                 `json:"title"`
	Parameters []models.ParameterSpec `json:"parameters"`
}
type SectionsResponseDto struct {
	Pipeline string       `json:"pipeline"`
	Sections []SectionDto `json:"sections"`
}

type ValidationResponseDto struct {
	Valid  bool                     `json:"valid"`
	Errors []models.ValidationError `json:"errors"`
}

type CommandLineResponseDto struct {
	CommandLine []string                  `json:"command_line"`
	Flags       []string                  `json:"flags"`
	Resolved    models.ResolvedParameters `json:"resolved"`
}

// -- Runs
type RunsResponseDto struct {
	Count   int                 `json:"count"`
	Results []indexes.RunRecord `json:"results"`
}
