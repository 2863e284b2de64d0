package app

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"app-webserver/core/apperr"
	"app-webserver/core/codec"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstance struct {
	running bool
	started time.Time
	hashErr error
}

func (f fakeInstance) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: "127.0.0.1:9090"}
}

func (f fakeInstance) SpaHash() (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "0123456789ABCDEF0123456789ABCDEF", nil
}

func (f fakeInstance) Running() bool        { return f.running }
func (f fakeInstance) StartedAt() time.Time { return f.started }

var testProviders = []AdProvider{
	{NetworkName: "AdMob", CanShowOverVpn: true},
	{ProviderName: "Chartboost EU", NetworkName: "Chartboost", ExcludeCountryCodes: []string{"US"}},
	{NetworkName: "Inmobi", IncludeCountryCodes: []string{"us", "CA"}},
}

func setupTestApp(t *testing.T, inst Instance) *fiber.App {
	t.Helper()
	svc := NewService("1.2.3", testProviders)
	svc.instance = func() (Instance, bool) { return inst, inst != nil }

	cd := codec.New(nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: cd.ErrorHandler})
	mgr := loader.NewManager(cd, loader.Features{App: &Feature{handler: NewHandler(svc)}})
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func TestHandleStatus(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Running", func(t *testing.T) {
		app := setupTestApp(t, fakeInstance{running: true, started: started})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/app/status", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, StateRunning, body["state"])
		assert.Equal(t, "http://127.0.0.1:9090", body["url"])
		assert.Equal(t, "0123456789ABCDEF0123456789ABCDEF", body["spaHash"])
		assert.Equal(t, "2026-01-02T03:04:05Z", body["startedAt"])
		assert.Equal(t, "1.2.3", body["version"])
	})

	t.Run("Stopped", func(t *testing.T) {
		app := setupTestApp(t, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/app/status", nil))
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, StateStopped, body["state"])
		assert.NotContains(t, body, "spaHash")
		assert.NotContains(t, body, "startedAt")
	})

	t.Run("HashUnavailable", func(t *testing.T) {
		app := setupTestApp(t, fakeInstance{running: true, hashErr: apperr.ErrInvalidState})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/app/status", nil))
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, StateRunning, body["state"])
		assert.NotContains(t, body, "spaHash")
	})
}

func TestHandleAdProviders(t *testing.T) {
	app := setupTestApp(t, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"AdMob", "Chartboost EU", "Inmobi"}},
		{"?country=US", []string{"AdMob", "Inmobi"}},
		{"?country=fr", []string{"AdMob", "Chartboost EU"}},
		{"?vpn=true", []string{"AdMob"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/app/ad-providers"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var body []AdProviderView
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			names := make([]string, 0, len(body))
			for _, p := range body {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestHandleAdProviders_BadCountry(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/app/ad-providers?country=USA", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body codec.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BadRequest", body.TypeName)
}

func TestHandleUnknownRoute(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/app/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
