package cors_test

import (
	"net/http/httptest"
	"testing"

	"app-webserver/core/middleware/cors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMode(t *testing.T) {
	debug := cors.ForMode(true)
	assert.Equal(t, cors.ModePermissive, debug.Mode())
	assert.Empty(t, debug.Origins())
	assert.Equal(t, "*", debug.Config().AllowOrigins)

	release := cors.ForMode(false)
	assert.Equal(t, cors.ModeAllowList, release.Mode())
	assert.Equal(t, cors.DevOrigins, release.Origins())
	assert.Contains(t, release.Config().AllowOrigins, "http://localhost:30080")
}

func TestAllowList_CopiesOrigins(t *testing.T) {
	origins := []string{"http://localhost:8080"}
	p := cors.AllowList(origins...)
	origins[0] = "http://evil.example"

	assert.Equal(t, []string{"http://localhost:8080"}, p.Origins())
}

func TestPolicy_Handler(t *testing.T) {
	tests := []struct {
		name   string
		policy cors.Policy
		origin string
		want   string
	}{
		{"PermissiveAnyOrigin", cors.Permissive(), "http://example.com", "*"},
		{"AllowListed", cors.ForMode(false), "http://localhost:8081", "http://localhost:8081"},
		{"NotListed", cors.ForMode(false), "http://example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(tt.policy.Handler())
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Origin", tt.origin)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "permissive", cors.ModePermissive.String())
	assert.Equal(t, "allow-list", cors.ModeAllowList.String())
}
