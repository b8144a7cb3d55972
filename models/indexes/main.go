package indexes

import (
	"github.com/latchbio-nfcore/rnadnavar/models/constants"
)

var MAPPING_TEXT = map[string]interface{}{"type": "text"}
var MAPPING_KEYWORD = map[string]interface{}{"type": "keyword"}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var RUN_RECORD_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"id":             MAPPING_KEYWORD,
		"pipeline":       MAPPING_KEYWORD,
		"execution_name": MAPPING_KEYWORD,
		"storage_claim":  MAPPING_KEYWORD,
		"state":          MAPPING_KEYWORD,
		"command_line":   MAPPING_TEXT,
		"exit_code":      MAPPING_LONG,
		"message":        MAPPING_TEXT,
		"log_path":       MAPPING_KEYWORD,
		"created_at":     MAPPING_DATE,
		"updated_at":     MAPPING_DATE,
	},
}

// RunRecord is one launcher execution as stored in the runs index.
// Timestamps are RFC 3339 strings.
type RunRecord struct {
	Id            string             `json:"id" mapstructure:"id"`
	Pipeline      string             `json:"pipeline" mapstructure:"pipeline"`
	ExecutionName string             `json:"execution_name" mapstructure:"execution_name"`
	StorageClaim  string             `json:"storage_claim" mapstructure:"storage_claim"`
	State         constants.RunState `json:"state" mapstructure:"state"`
	CommandLine   []string           `json:"command_line" mapstructure:"command_line"`
	ExitCode      int                `json:"exit_code" mapstructure:"exit_code"`
	Message       string             `json:"message" mapstructure:"message"`
	LogPath       string             `json:"log_path" mapstructure:"log_path"`
	CreatedAt     string             `json:"created_at" mapstructure:"created_at"`
	UpdatedAt     string             `json:"updated_at" mapstructure:"updated_at"`
}
