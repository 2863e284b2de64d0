// Package rayid tags every request with a unique ID for log correlation.
package rayid

import (
	"app-webserver/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request/response header carrying the ray ID.
const Header = "X-Ray-ID"

// New returns a middleware that reuses an incoming X-Ray-ID or generates a
// UUID, stores it under logger.RayIDKey and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
