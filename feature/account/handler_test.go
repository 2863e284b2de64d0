package account

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"app-webserver/core/codec"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cd := codec.New(nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: cd.ErrorHandler})
	mgr := loader.NewManager(cd, loader.Features{Account: NewFeature(zap.NewNop())})
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestAccountSession(t *testing.T) {
	app := setupTestApp(t)

	status, body := do(t, app, "GET", "/api/account", "")
	assert.Equal(t, 204, status)
	assert.Empty(t, body)

	status, body = do(t, app, "POST", "/api/account/sign-in", `{"email":"Jane <jane@example.com>"}`)
	require.Equal(t, 200, status)
	var signedIn Account
	require.NoError(t, json.Unmarshal(body, &signedIn))
	assert.Equal(t, "jane@example.com", signedIn.Email)
	assert.NotEmpty(t, signedIn.UserID)

	status, body = do(t, app, "GET", "/api/account", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(body), `"userId":"`+signedIn.UserID+`"`)

	status, _ = do(t, app, "POST", "/api/account/sign-out", "")
	assert.Equal(t, 204, status)

	status, _ = do(t, app, "GET", "/api/account", "")
	assert.Equal(t, 204, status)
}

func TestAccountErrors(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name     string
		path     string
		body     string
		status   int
		typeName string
	}{
		{"sign out while signed out", "/api/account/sign-out", "", 401, "Unauthorized"},
		{"invalid email", "/api/account/sign-in", `{"email":"not-an-email"}`, 400, "BadRequest"},
		{"malformed body", "/api/account/sign-in", `{`, 400, "BadRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, status)

			var errBody codec.ErrorBody
			require.NoError(t, json.Unmarshal(body, &errBody))
			assert.Equal(t, tt.typeName, errBody.TypeName)
		})
	}
}
