package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"github.com/latchbio-nfcore/rnadnavar/contexts"
	gam "github.com/latchbio-nfcore/rnadnavar/middleware"
	"github.com/latchbio-nfcore/rnadnavar/utils/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPolicyServer permits requests carrying the "good" token.
func newPolicyServer(t *testing.T, received *map[string]interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/policy/evaluate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(received))

		permitted := r.Header.Get("Authorization") == "Bearer good"
		json.NewEncoder(w).Encode(map[string]interface{}{"result": permitted})
	}))
}

func newAuthorizedContext(authorization string) (*contexts.PipelineContext, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/parameters", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return &contexts.PipelineContext{Context: e.NewContext(req, rec), Config: testconfig.InitConfig()}, rec
}

func TestFetchAuthorizationHeader(t *testing.T) {
	az := NewAuthzService(testconfig.InitConfig())

	_, err := az.FetchAuthorizationHeader(http.Header{})
	assert.Error(t, err)

	h := http.Header{}
	h.Set("Authorization", "Bearer abc.def")
	token, err := az.FetchAuthorizationHeader(h)
	assert.NoError(t, err)
	assert.Equal(t, "abc.def", token)
}

func TestMandateAuthorizationTokensMiddleware(t *testing.T) {
	received := map[string]interface{}{}
	server := newPolicyServer(t, &received)
	defer server.Close()

	cfg := testconfig.InitConfig()
	cfg.AuthX.IsAuthorizationEnabled = true
	cfg.AuthX.AuthorizationUrl = server.URL + "/"
	az := NewAuthzService(cfg)

	called := false
	handler := gam.ViewWorkflowPermissionAttribute(az.MandateAuthorizationTokensMiddleware(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))

	// missing header
	c, rec := newAuthorizedContext("")
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	// denied
	c, rec = newAuthorizedContext("Bearer bad")
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	// permitted
	c, rec = newAuthorizedContext("Bearer good")
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	assert.Equal(t, []interface{}{"view:workflow"}, received["required_permissions"])
	assert.Equal(t, map[string]interface{}{"everything": true}, received["requested_resource"])
}

func TestMandateAuthorizationTokensMiddlewareDisabled(t *testing.T) {
	az := NewAuthzService(testconfig.InitConfig())

	called := false
	c, rec := newAuthorizedContext("")
	require.NoError(t, az.MandateAuthorizationTokensMiddleware(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnsureAccessPermittedUnreachable(t *testing.T) {
	cfg := testconfig.InitConfig()
	cfg.AuthX.IsAuthorizationEnabled = true
	cfg.AuthX.AuthorizationUrl = "http://127.0.0.1:1"
	az := NewAuthzService(cfg)

	err := az.EnsureAccessPermitted("good", nil, nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrAccessDenied))
}
