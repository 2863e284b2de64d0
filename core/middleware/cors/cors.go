// Package cors selects the cross-origin policy of the web server.
package cors

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"
)

// DevOrigins are the local development origins allowed outside debug mode.
var DevOrigins = []string{
	"https://localhost:8080",
	"http://localhost:8080",
	"https://localhost:8081",
	"http://localhost:8081",
	"http://localhost:30080",
}

// Mode is the kind of cross-origin policy.
type Mode int

const (
	// ModePermissive allows any origin.
	ModePermissive Mode = iota
	// ModeAllowList allows a fixed set of origins.
	ModeAllowList
)

func (m Mode) String() string {
	if m == ModePermissive {
		return "permissive"
	}
	return "allow-list"
}

// Policy is a cross-origin policy, chosen once at startup.
type Policy struct {
	mode    Mode
	origins []string
}

// Permissive returns a policy that allows every origin.
func Permissive() Policy {
	return Policy{mode: ModePermissive}
}

// AllowList returns a policy allowing exactly origins.
func AllowList(origins ...string) Policy {
	return Policy{mode: ModeAllowList, origins: append([]string(nil), origins...)}
}

// ForMode returns Permissive in debug mode and the DevOrigins allow-list otherwise.
func ForMode(debug bool) Policy {
	if debug {
		return Permissive()
	}
	return AllowList(DevOrigins...)
}

// Mode reports the policy kind.
func (p Policy) Mode() Mode {
	return p.mode
}

// Origins returns a copy of the allowed origins; empty for Permissive.
func (p Policy) Origins() []string {
	return append([]string(nil), p.origins...)
}

// Config renders the policy as fiber's cors configuration.
func (p Policy) Config() fibercors.Config {
	cfg := fibercors.Config{
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodHead,
		}, ","),
	}
	if p.mode == ModePermissive {
		cfg.AllowOrigins = "*"
	} else {
		cfg.AllowOrigins = strings.Join(p.origins, ",")
	}
	return cfg
}

// Handler returns the fiber middleware enforcing the policy.
func (p Policy) Handler() fiber.Handler {
	return fibercors.New(p.Config())
}
