package account

import (
	"app-webserver/core/apperr"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the account namespace.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the account routes relative to /api/account.
func (h *Handler) RegisterRoutes(r loader.Router) {
	r.Get("/", h.HandleCurrent)
	r.Post("/sign-in", h.HandleSignIn)
	r.Post("/sign-out", h.HandleSignOut)
}

// HandleCurrent returns the signed-in account; a nil account becomes 204.
func (h *Handler) HandleCurrent(c *fiber.Ctx) (any, error) {
	return h.service.Current(), nil
}

func (h *Handler) HandleSignIn(c *fiber.Ctx) (any, error) {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "invalid request body")
	}
	return h.service.SignIn(req)
}

func (h *Handler) HandleSignOut(c *fiber.Ctx) (any, error) {
	return nil, h.service.SignOut()
}
