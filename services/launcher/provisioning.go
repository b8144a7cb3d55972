package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Jeffail/gabs"
	"github.com/latchbio-nfcore/rnadnavar/logx"
)

// Provision requests the shared storage volume and returns its claim name.
// The call is not retried.
func (l *Launcher) Provision(ctx context.Context) (string, error) {
	if l.Config.Platform.ExecutionToken == "" {
		return "", ErrMissingExecutionToken
	}

	data, err := json.Marshal(map[string]int{
		"storage_gib": l.Config.Platform.StorageGiB,
	})
	if err != nil {
		return "", err
	}

	provisionUrl := strings.TrimRight(l.Config.Platform.DispatcherUrl, "/") + "/provision-storage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provisionUrl, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}
	req.Header.Add("Authorization", l.authorization())
	req.Header.Add("Content-Type", "application/json")

	logx.Log.Info().Int("storage_gib", l.Config.Platform.StorageGiB).Msg("provisioning shared storage volume")

	res, err := l.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrProvisioningFailed, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	jsonParsed, err := gabs.ParseJSON(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}
	name, ok := jsonParsed.Path("name").Data().(string)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: response carries no volume name", ErrProvisioningFailed)
	}

	logx.Log.Info().Str("claim", name).Msg("provisioned shared storage volume")
	return name, nil
}

func (l *Launcher) authorization() string {
	return fmt.Sprintf("%s %s", l.Config.Platform.AuthorizationScheme, l.Config.Platform.ExecutionToken)
}
