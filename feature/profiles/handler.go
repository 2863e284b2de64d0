package profiles

import (
	"app-webserver/core/apperr"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for client profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the profile routes relative to /api/client-profiles.
func (h *Handler) RegisterRoutes(r loader.Router) {
	r.Get("/", h.HandleList)
	r.Get("/:id", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Patch("/:id", h.HandleUpdate)
	r.Delete("/:id", h.HandleDelete)
}

// HandleList lists all profiles.
func (h *Handler) HandleList(c *fiber.Ctx) (any, error) {
	return h.service.List(), nil
}

// HandleGet returns one profile.
func (h *Handler) HandleGet(c *fiber.Ctx) (any, error) {
	return h.service.Get(c.Params("id"))
}

// HandleCreate creates a profile.
func (h *Handler) HandleCreate(c *fiber.Ctx) (any, error) {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "invalid request body")
	}
	return h.service.Create(req)
}

// HandleUpdate renames a profile.
func (h *Handler) HandleUpdate(c *fiber.Ctx) (any, error) {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "invalid request body")
	}
	return h.service.Update(c.Params("id"), req)
}

// HandleDelete deletes a profile. A nil result is answered with 204.
func (h *Handler) HandleDelete(c *fiber.Ctx) (any, error) {
	return nil, h.service.Delete(c.Params("id"))
}
