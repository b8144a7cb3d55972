package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/latchbio-nfcore/rnadnavar/utils/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteLogPath(t *testing.T) {
	cfg := testconfig.InitConfig()
	assert.Equal(t, "latch:///your_log_dir/nf_nf_core_rnadnavar/brave-hopper/nextflow.log", RemoteLogPath(cfg, "brave-hopper"))

	cfg.Logs.RemoteRoot = "latch:///logs/"
	assert.Equal(t, "latch:///logs/nf_nf_core_rnadnavar/x/nextflow.log", RemoteLogPath(cfg, "x"))
}

func TestPlatformNameResolverPrefersConfiguredName(t *testing.T) {
	cfg := testconfig.InitConfig()
	cfg.Platform.ExecutionName = "configured"
	cfg.Platform.ExecutionInfoUrl = "http://127.0.0.1:1/graphql"

	name, err := (&PlatformNameResolver{Config: cfg, HttpClient: &http.Client{}}).ExecutionName(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "configured", name)
}

func TestPlatformNameResolverQueriesPlatform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Latch-Execution-Token test-execution-token", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["query"], "executionInfo")
		assert.Equal(t, map[string]interface{}{"argToken": "test-execution-token"}, body["variables"])

		w.Write([]byte(`{"data": {"executionInfo": {"displayName": "brave-hopper"}}}`))
	}))
	defer server.Close()

	cfg := testconfig.InitConfig()
	cfg.Platform.ExecutionInfoUrl = server.URL

	name, err := (&PlatformNameResolver{Config: cfg, HttpClient: server.Client()}).ExecutionName(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "brave-hopper", name)
}

func TestPlatformNameResolverFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"executionInfo": null}}`))
	}))
	defer server.Close()

	cfg := testconfig.InitConfig()
	cfg.Platform.ExecutionInfoUrl = server.URL
	resolver := &PlatformNameResolver{Config: cfg, HttpClient: server.Client()}

	_, err := resolver.ExecutionName(context.Background())
	assert.True(t, errors.Is(err, ErrExecutionNameMissing))

	cfg.Platform.ExecutionToken = ""
	_, err = resolver.ExecutionName(context.Background())
	assert.True(t, errors.Is(err, ErrExecutionNameMissing))
}

func TestDataApiUploader(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), ".nextflow.log")
	require.NoError(t, os.WriteFile(logPath, []byte("engine log"), 0o644))

	var (
		uploaded string
		ended    map[string]interface{}
	)
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/ldata/start-upload", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "latch:///logs/nextflow.log", body["path"])
		assert.Equal(t, float64(1), body["part_count"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"upload_id": "upload-1",
				"urls":      []string{server.URL + "/part/1"},
			},
		})
	})
	mux.HandleFunc("/part/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		data, _ := io.ReadAll(r.Body)
		uploaded = string(data)
		w.Header().Set("ETag", `"etag-1"`)
	})
	mux.HandleFunc("/ldata/end-upload", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ended))
		w.Write([]byte(`{}`))
	})

	cfg := testconfig.InitConfig()
	cfg.Platform.DataApiUrl = server.URL

	err := (&DataApiUploader{Config: cfg, HttpClient: server.Client()}).Upload(context.Background(), logPath, "latch:///logs/nextflow.log")
	require.NoError(t, err)

	assert.Equal(t, "engine log", uploaded)
	assert.Equal(t, "upload-1", ended["upload_id"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"ETag": `"etag-1"`, "PartNumber": float64(1)},
	}, ended["parts"])
}

func TestDataApiUploaderStartFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), ".nextflow.log")
	require.NoError(t, os.WriteFile(logPath, []byte("engine log"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := testconfig.InitConfig()
	cfg.Platform.DataApiUrl = server.URL

	err := (&DataApiUploader{Config: cfg, HttpClient: server.Client()}).Upload(context.Background(), logPath, "latch:///logs/nextflow.log")
	assert.ErrorContains(t, err, "start-upload")
}
