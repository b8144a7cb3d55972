package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models"
	authz "github.com/latchbio-nfcore/rnadnavar/models/authorization"
	dtos "github.com/latchbio-nfcore/rnadnavar/models/dtos/authorization"
	e "github.com/latchbio-nfcore/rnadnavar/models/dtos/errors"
)

var publicAuthzErrorMessage string = "Something went wrong interfacing with the authorization service! Please contact the system administrators.."

var ErrAccessDenied = errors.New("access denied")

type (
	AuthzService struct {
		isEnabled        bool
		authorizationUrl string
		client           *http.Client
	}
)

func NewAuthzService(cfg *models.Config) *AuthzService {
	return &AuthzService{
		isEnabled:        cfg.AuthX.IsAuthorizationEnabled,
		authorizationUrl: strings.TrimRight(cfg.AuthX.AuthorizationUrl, "/"),
		client:           &http.Client{},
	}
}

func (a *AuthzService) IsEnabled() bool {
	return a.isEnabled
}

func (a *AuthzService) GetAuthorizationUrl() string {
	return a.authorizationUrl
}

// EnsureAccessPermitted evaluates the token against the policy service for
// the given resource and permissions.
func (a *AuthzService) EnsureAccessPermitted(authnTokenString string, resource authz.Resource, permissions authz.PermissionsList) error {
	permissionRequestJson := dtos.PermissionRequestDto{
		RequestedResource:   resource,
		RequiredPermissions: permissions,
	}

	permJsonData, err := json.Marshal(&permissionRequestJson)
	if err != nil {
		logx.Log.Error().Err(err).Msg("cannot encode permission request")
		return errors.New(publicAuthzErrorMessage)
	}

	evaluateUrl := fmt.Sprintf("%s/%s/%s", a.GetAuthorizationUrl(), "policy", "evaluate")
	permReq, err := http.NewRequest(http.MethodPost, evaluateUrl, bytes.NewBuffer(permJsonData))
	if err != nil {
		logx.Log.Error().Err(err).Msg("cannot build permission request")
		return errors.New(publicAuthzErrorMessage)
	}
	permReq.Header.Add("Authorization", "Bearer "+authnTokenString)
	permReq.Header.Add("Content-Type", "application/json")

	permRes, err := a.client.Do(permReq)
	if err != nil {
		logx.Log.Error().Err(err).Str("url", evaluateUrl).Msg("authorization service unreachable")
		return errors.New(publicAuthzErrorMessage)
	}
	defer permRes.Body.Close()

	if permRes.StatusCode != http.StatusOK {
		return ErrAccessDenied
	}

	// the policy service answers {"result": true|false}
	var permJson map[string]interface{}
	if err := json.NewDecoder(permRes.Body).Decode(&permJson); err != nil {
		logx.Log.Error().Err(err).Msg("cannot decode authorization response")
		return errors.New(publicAuthzErrorMessage)
	}

	accessPermitted, isMapContainsKey := permJson["result"]
	if !isMapContainsKey {
		logx.Log.Error().Msg("Missing 'result' key from authorization service response!")
		return errors.New(publicAuthzErrorMessage)
	}
	if permitted, ok := accessPermitted.(bool); !ok || !permitted {
		return ErrAccessDenied
	}

	// Access permitted! Return no error
	return nil
}

func (a *AuthzService) FetchAuthorizationHeader(headers http.Header) (string, error) {
	// return error if the Authorization header is missing
	authnToken := headers.Get("Authorization")
	if authnToken == "" {
		return "", errors.New("missing 'Authorization' HTTP header")
	}

	// remove "Bearer " if need be
	if scheme, token, found := strings.Cut(authnToken, " "); found && strings.EqualFold(scheme, "Bearer") {
		authnToken = token
	}

	return authnToken, nil
}

// MandateAuthorizationTokensMiddleware must run after a permission
// attribute middleware has filled in the required permissions.
func (a *AuthzService) MandateAuthorizationTokensMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.IsEnabled() {
			gc := c.(*contexts.PipelineContext)

			// check request headers
			authnToken, missingHeaderErr := a.FetchAuthorizationHeader(c.Request().Header)
			if missingHeaderErr != nil {
				return c.JSON(http.StatusForbidden, e.CreateSimpleUnauthorized(missingHeaderErr.Error()))
			}

			// check user permission
			accessError := a.EnsureAccessPermitted(authnToken, gc.RequestedResource, gc.RequiredPermissions)
			if accessError != nil {
				return c.JSON(http.StatusUnauthorized, e.CreateSimpleUnauthorized(accessError.Error()))
			}
		}

		// access granted!
		return next(c)
	}
}
