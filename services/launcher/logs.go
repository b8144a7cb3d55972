package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jeffail/gabs"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models"
	serviceInfo "github.com/latchbio-nfcore/rnadnavar/models/constants/service-info"
	"github.com/latchbio-nfcore/rnadnavar/utils"
)

type ExecutionNameResolver interface {
	ExecutionName(ctx context.Context) (string, error)
}

type LogUploader interface {
	Upload(ctx context.Context, localPath string, remotePath string) error
}

const executionNameQuery = `query ExecutionName($argToken: String!) {
  executionInfo(token: $argToken) {
    displayName
  }
}`

// PlatformNameResolver prefers a configured execution name and otherwise
// asks the platform's execution-info endpoint.
type PlatformNameResolver struct {
	Config     *models.Config
	HttpClient *http.Client
}

func (r *PlatformNameResolver) ExecutionName(ctx context.Context) (string, error) {
	if name := r.Config.Platform.ExecutionName; name != "" {
		return name, nil
	}
	token := r.Config.Platform.ExecutionToken
	if token == "" {
		return "", fmt.Errorf("%w: %v", ErrExecutionNameMissing, ErrMissingExecutionToken)
	}

	jsonParsed, err := postJson(ctx, r.HttpClient, r.Config, r.Config.Platform.ExecutionInfoUrl, map[string]interface{}{
		"query":     executionNameQuery,
		"variables": map[string]string{"argToken": token},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExecutionNameMissing, err)
	}

	name, ok := jsonParsed.Path("data.executionInfo.displayName").Data().(string)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: no display name in response", ErrExecutionNameMissing)
	}
	return name, nil
}

// DataApiUploader pushes a file through the object store's single-part
// upload: start-upload, PUT to the returned url, end-upload.
type DataApiUploader struct {
	Config     *models.Config
	HttpClient *http.Client
}

func (u *DataApiUploader) Upload(ctx context.Context, localPath string, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "text/plain"
	}

	base := strings.TrimRight(u.Config.Platform.DataApiUrl, "/")

	started, err := postJson(ctx, u.HttpClient, u.Config, base+"/ldata/start-upload", map[string]interface{}{
		"path":         remotePath,
		"part_count":   1,
		"content_type": contentType,
	})
	if err != nil {
		return fmt.Errorf("start-upload: %w", err)
	}
	uploadId, _ := started.Path("data.upload_id").Data().(string)
	partUrl, _ := started.Path("data.urls").Index(0).Data().(string)
	if uploadId == "" || partUrl == "" {
		return fmt.Errorf("start-upload: response carries no upload id or url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, partUrl, f)
	if err != nil {
		return err
	}
	req.ContentLength = stat.Size()
	req.Header.Set("Content-Type", contentType)

	res, err := u.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("part upload: %w", err)
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("part upload: %s", res.Status)
	}

	_, err = postJson(ctx, u.HttpClient, u.Config, base+"/ldata/end-upload", map[string]interface{}{
		"path":      remotePath,
		"upload_id": uploadId,
		"parts": []map[string]interface{}{
			{"ETag": res.Header.Get("ETag"), "PartNumber": 1},
		},
	})
	if err != nil {
		return fmt.Errorf("end-upload: %w", err)
	}
	return nil
}

func postJson(ctx context.Context, client *http.Client, cfg *models.Config, url string, payload interface{}) (*gabs.Container, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", fmt.Sprintf("%s %s", cfg.Platform.AuthorizationScheme, cfg.Platform.ExecutionToken))
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(body)))
	}
	return gabs.ParseJSON(body)
}

// RemoteLogPath is where the engine log of the named execution is kept.
func RemoteLogPath(cfg *models.Config, executionName string) string {
	return utils.JoinRemotePath(cfg.Logs.RemoteRoot, string(serviceInfo.PIPELINE_ID), executionName, cfg.Logs.FileName)
}

// logScope is opened before the working directory is touched. Closing it
// always attempts the log upload, whatever happened inside the scope.
type logScope struct {
	l       *Launcher
	logPath string
}

func (l *Launcher) openLogScope() *logScope {
	return &logScope{
		l:       l,
		logPath: filepath.Join(l.Config.Staging.SharedDirectory, l.Config.Engine.LogFile),
	}
}

// Close returns the resolved execution name and the remote path the log
// was uploaded to; either is "" when unavailable. Failures are logged,
// never returned.
func (s *logScope) Close(ctx context.Context) (string, string) {
	if !utils.FileExists(s.logPath) {
		logx.Log.Info().Str("path", s.logPath).Msg("no engine log to upload")
		return "", ""
	}

	name, err := s.l.Names.ExecutionName(ctx)
	if err != nil {
		logx.Log.Warn().Err(err).Msg("Skipping logs upload, failed to get execution name")
		return "", ""
	}

	remote := RemoteLogPath(s.l.Config, name)
	logx.Log.Info().Str("remote", remote).Msgf("Uploading %s", filepath.Base(s.logPath))
	if err := s.l.Uploader.Upload(ctx, s.logPath, remote); err != nil {
		logx.Log.Error().Err(fmt.Errorf("%w: %v", ErrLogUploadFailed, err)).Str("remote", remote).Msg("log upload failed")
		return name, ""
	}
	return name, remote
}
