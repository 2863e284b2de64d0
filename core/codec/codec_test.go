package codec_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"app-webserver/core/apperr"
	"app-webserver/core/codec"
	"app-webserver/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type connectionState struct {
	ConnectionState string   `json:"connectionState"`
	ClientProfileID string   `json:"clientProfileId"`
	SessionTraffic  int64    `json:"sessionTraffic"`
	ServerLocations []string `json:"serverLocations"`
}

func setupApp(t *testing.T, h codec.HandlerFunc) (*fiber.App, *metrics.Registry) {
	t.Helper()
	m := metrics.New()
	cd := codec.New(zap.NewNop(), m)
	app := fiber.New(fiber.Config{ErrorHandler: cd.ErrorHandler, JSONEncoder: codec.Marshal})
	app.All("/api/test", cd.Handle(h))
	return app, m
}

func TestHandle_SuccessRoundTrip(t *testing.T) {
	want := connectionState{
		ConnectionState: "Connected",
		ClientProfileID: "b0f3",
		SessionTraffic:  4096,
		ServerLocations: []string{"US/NY", "DE/*"},
	}
	app, _ := setupApp(t, func(c *fiber.Ctx) (any, error) { return want, nil })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEqual(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])

	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "connectionState")
	assert.Contains(t, keys, "clientProfileId")

	var got connectionState
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, want, got)
}

func TestHandle_NilResult(t *testing.T) {
	tests := []struct {
		name   string
		result any
	}{
		{"NilInterface", nil},
		{"NilPointer", (*connectionState)(nil)},
		{"NilSlice", []string(nil)},
		{"NilMap", map[string]int(nil)},
		{"NilFunc", (func())(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupApp(t, func(c *fiber.Ctx) (any, error) { return tt.result, nil })

			resp, err := app.Test(httptest.NewRequest("POST", "/api/test", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Empty(t, body)
		})
	}
}

func TestHandle_UntaggedFieldsAreCamelCase(t *testing.T) {
	type serverInfo struct {
		DisplayName string
		ServerPort  int
		Region      string `json:"region_code"`
	}
	app, _ := setupApp(t, func(c *fiber.Ctx) (any, error) {
		return serverInfo{DisplayName: "a", ServerPort: 1, Region: "eu"}, nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"displayName":"a","serverPort":1,"region_code":"eu"}`, string(body))
}

func TestHandle_EmptySliceIsNotNoContent(t *testing.T) {
	app, _ := setupApp(t, func(c *fiber.Ctx) (any, error) { return []string{}, nil })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandle_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		typeName string
		message  string
	}{
		{"Unclassified", errors.New("boom"), 500, "HandlerFailure", "boom"},
		{"DomainNotFound", apperr.New(apperr.KindNotFound, "profile %s not found", "p1"), 404, "NotFound", "profile p1 not found"},
		{"ExplicitStatus", apperr.WithStatus(fiber.StatusPaymentRequired, apperr.KindConflict, "subscription expired"), 402, "Conflict", "subscription expired"},
		{"NotSupported", apperr.New(apperr.KindNotSupported, "billing unavailable"), 501, "NotSupported", "billing unavailable"},
		{"FiberBadRequest", fiber.NewError(fiber.StatusBadRequest, "bad json"), 400, "BadRequest", "bad json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := setupApp(t, func(c *fiber.Ctx) (any, error) { return nil, tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body codec.ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.typeName, body.TypeName)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status, body.StatusCode)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.HandlerFailures.WithLabelValues(tt.typeName)))
		})
	}
}

func TestErrorHandler_NotFoundIsBare(t *testing.T) {
	cd := codec.New(nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: cd.ErrorHandler})
	app.Get("/missing.png", func(c *fiber.Ctx) error {
		return apperr.New(apperr.KindRouteNotFound, "no such asset")
	})

	for _, path := range []string{"/missing.png", "/not-registered"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		body, _ := io.ReadAll(resp.Body)
		assert.Empty(t, body, path)
	}
}

func TestErrorHandler_OtherErrorsAreStructured(t *testing.T) {
	cd := codec.New(nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: cd.ErrorHandler})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	var body codec.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NotSupported", body.TypeName)
}
