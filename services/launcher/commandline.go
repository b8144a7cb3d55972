package launcher

import (
	"path/filepath"
	"strings"

	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/latchbio-nfcore/rnadnavar/services/flags"
)

// BuildCommandLine returns the engine invocation: the fixed run prefix
// followed by the translated parameter flags.
func BuildCommandLine(cfg *models.Config, params models.ResolvedParameters) []string {
	shared := cfg.Staging.SharedDirectory
	cmd := []string{
		cfg.Engine.Binary,
		"run",
		filepath.Join(shared, cfg.Engine.Manifest),
		"-work-dir",
		shared,
		"-profile",
		cfg.Engine.Profile,
		"-c",
		cfg.Engine.ConfigFile,
	}
	return append(cmd, flags.Translate(params)...)
}

// BuildEnvironment augments base with the engine's runtime tuning
// variables. Keys already present in base are replaced.
func BuildEnvironment(cfg *models.Config, base []string, storageClaim string) []string {
	overrides := [][2]string{
		{"NXF_HOME", cfg.Engine.Home},
		{"NXF_OPTS", cfg.Engine.Opts},
		{"K8S_STORAGE_CLAIM_NAME", storageClaim},
	}
	if cfg.Engine.DisableCheckLatest {
		overrides = append(overrides, [2]string{"NXF_DISABLE_CHECK_LATEST", "true"})
	}

	replaced := map[string]bool{}
	for _, kv := range overrides {
		replaced[kv[0]] = true
	}

	env := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if replaced[key] {
			continue
		}
		env = append(env, entry)
	}
	for _, kv := range overrides {
		env = append(env, kv[0]+"="+kv[1])
	}
	return env
}
