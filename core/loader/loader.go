package loader

import (
	"strings"

	"app-webserver/core/apperr"
	"app-webserver/core/codec"

	"github.com/gofiber/fiber/v2"
)

// Fixed API namespace prefixes, in mount order.
const (
	PrefixApp            = "/api/app"
	PrefixClientProfiles = "/api/client-profiles"
	PrefixAccount        = "/api/account"
	PrefixBilling        = "/api/billing"
)

// Feature is an opaque handler set mounted under one API prefix.
type Feature interface {
	// Name identifies the feature in logs.
	Name() string
	// Register adds the feature's routes, relative to its prefix.
	Register(r Router)
}

// Router registers codec handlers on a mounted namespace.
type Router interface {
	Get(path string, h codec.HandlerFunc)
	Post(path string, h codec.HandlerFunc)
	Put(path string, h codec.HandlerFunc)
	Patch(path string, h codec.HandlerFunc)
	Delete(path string, h codec.HandlerFunc)
}

// Mount binds a prefix to a feature. Feature may be nil, in which case the
// prefix is still reserved and every request under it is RouteNotFound.
type Mount struct {
	Prefix  string
	Feature Feature
}

// Manager holds the route table: the four API namespaces in fixed order.
type Manager struct {
	codec  *codec.Codec
	mounts []Mount
}

// Features are the handler sets for the four namespaces.
type Features struct {
	App            Feature
	ClientProfiles Feature
	Account        Feature
	Billing        Feature
}

// NewManager builds the route table. It is immutable once created.
func NewManager(cd *codec.Codec, f Features) *Manager {
	return &Manager{
		codec: cd,
		mounts: []Mount{
			{Prefix: PrefixApp, Feature: f.App},
			{Prefix: PrefixClientProfiles, Feature: f.ClientProfiles},
			{Prefix: PrefixAccount, Feature: f.Account},
			{Prefix: PrefixBilling, Feature: f.Billing},
		},
	}
}

// Mounts returns a copy of the route table.
func (m *Manager) Mounts() []Mount {
	return append([]Mount(nil), m.mounts...)
}

// Match returns the prefix of the namespace owning path, if any.
func (m *Manager) Match(path string) (string, bool) {
	best := ""
	for _, mt := range m.mounts {
		if hasPathPrefix(path, mt.Prefix) && len(mt.Prefix) > len(best) {
			best = mt.Prefix
		}
	}
	return best, best != ""
}

// LoadAll mounts every namespace on app. Each namespace ends with a catch-all
// so unmatched API paths never fall through to the static mount.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, mt := range m.mounts {
		group := app.Group(mt.Prefix)
		if mt.Feature != nil {
			mt.Feature.Register(&groupRouter{group: group, codec: m.codec})
		}
		prefix := mt.Prefix
		group.Use(func(c *fiber.Ctx) error {
			// fiber's Use matches raw string prefixes (/api/app also sees /api/apple).
			if !hasPathPrefix(c.Path(), prefix) {
				return c.Next()
			}
			return m.codec.WriteError(c, apperr.New(apperr.KindRouteNotFound,
				"no route for %s %s", c.Method(), c.Path()))
		})
	}
	return nil
}

// hasPathPrefix matches whole path segments: /api/app matches /api/app and
// /api/app/x but not /api/apple. Case is ignored, like fiber's router.
func hasPathPrefix(path, prefix string) bool {
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

type groupRouter struct {
	group fiber.Router
	codec *codec.Codec
}

func (g *groupRouter) Get(path string, h codec.HandlerFunc) {
	g.group.Get(path, g.codec.Handle(h))
}

func (g *groupRouter) Post(path string, h codec.HandlerFunc) {
	g.group.Post(path, g.codec.Handle(h))
}

func (g *groupRouter) Put(path string, h codec.HandlerFunc) {
	g.group.Put(path, g.codec.Handle(h))
}

func (g *groupRouter) Patch(path string, h codec.HandlerFunc) {
	g.group.Patch(path, g.codec.Handle(h))
}

func (g *groupRouter) Delete(path string, h codec.HandlerFunc) {
	g.group.Delete(path, g.codec.Handle(h))
}
