package app

import (
	"app-webserver/core/apperr"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the app namespace.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the app routes relative to /api/app.
func (h *Handler) RegisterRoutes(r loader.Router) {
	r.Get("/status", h.HandleStatus)
	r.Get("/ad-providers", h.HandleAdProviders)
}

// HandleStatus returns the server status.
func (h *Handler) HandleStatus(c *fiber.Ctx) (any, error) {
	return h.service.Status(), nil
}

// HandleAdProviders returns the ad providers matching the query filters.
func (h *Handler) HandleAdProviders(c *fiber.Ctx) (any, error) {
	country := c.Query("country")
	if country != "" && len(country) != 2 {
		return nil, apperr.New(apperr.KindBadRequest, "country must be a two-letter code, got %q", country)
	}
	return h.service.AdProviders(country, c.QueryBool("vpn")), nil
}
