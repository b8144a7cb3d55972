package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParams(t *testing.T, doc string) string {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRunRequiresParamsFile(t *testing.T) {
	out := &bytes.Buffer{}
	assert.Equal(t, 2, run(context.Background(), []string{}, out))
	assert.Equal(t, 2, run(context.Background(), []string{"-no-such-flag"}, out))
}

func TestRunDryRunPrintsCommandLine(t *testing.T) {
	t.Setenv("RNADNAVAR_ENGINE_BINARY", "/opt/nextflow")
	t.Setenv("RNADNAVAR_SHARED_WORKDIR", "/nf-workdir")
	path := writeParams(t, "input: samples.csv\nread_length: 76\nwes: true\nsave_mapped: false\n")

	out := &bytes.Buffer{}
	code := run(context.Background(), []string{"-params", path, "-dry-run"}, out)

	assert.Equal(t, 0, code)
	assert.Equal(t, "/opt/nextflow run /nf-workdir/main.nf -work-dir /nf-workdir -profile docker -c latch.config --input samples.csv --read_length 76.0 --wes\n", out.String())
}

func TestRunRejectsBadParameters(t *testing.T) {
	out := &bytes.Buffer{}

	path := writeParams(t, "not_a_parameter: 1\n")
	assert.Equal(t, 1, run(context.Background(), []string{"-params", path, "-dry-run"}, out))

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	assert.Equal(t, 1, run(context.Background(), []string{"-params", missing}, out))
	assert.Empty(t, out.String())
}

func TestRunWithoutExecutionTokenFails(t *testing.T) {
	t.Setenv("FLYTE_INTERNAL_EXECUTION_ID", "")
	t.Setenv("RNADNAVAR_ES_URL", "")
	path := writeParams(t, "input: samples.csv\n")

	assert.Equal(t, 1, run(context.Background(), []string{"-params", path}, &bytes.Buffer{}))
}

func TestRunExitsWithEngineStatus(t *testing.T) {
	// storage is granted, every other platform call fails
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/provision-storage" {
			w.Write([]byte(`{"name": "pvc-rnadnavar-1"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer platform.Close()

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "main.nf"), []byte("workflow {}\n"), 0o644))

	engine := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(engine, []byte("#!/bin/sh\necho \"engine log\" > .nextflow.log\nexit 3\n"), 0o755))

	t.Setenv("FLYTE_INTERNAL_EXECUTION_ID", "test-execution-token")
	t.Setenv("RNADNAVAR_ES_URL", "")
	t.Setenv("RNADNAVAR_DISPATCHER_URL", platform.URL)
	t.Setenv("RNADNAVAR_EXECUTION_INFO_URL", platform.URL)
	t.Setenv("RNADNAVAR_DATA_API_URL", platform.URL)
	t.Setenv("RNADNAVAR_STAGING_SOURCE", source)
	t.Setenv("RNADNAVAR_SHARED_WORKDIR", filepath.Join(t.TempDir(), "shared"))
	t.Setenv("RNADNAVAR_ENGINE_BINARY", engine)
	path := writeParams(t, "input: samples.csv\n")

	assert.Equal(t, 3, run(context.Background(), []string{"-params", path}, &bytes.Buffer{}))
}
