package billing

import (
	"app-webserver/core/apperr"
	"app-webserver/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Product is a purchasable subscription plan.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

// Handler handles HTTP requests for billing.
type Handler struct {
	products []Product
}

// NewHandler creates a handler listing products.
func NewHandler(products []Product) *Handler {
	if products == nil {
		products = []Product{}
	}
	return &Handler{products: products}
}

// RegisterRoutes registers the billing routes relative to /api/billing.
func (h *Handler) RegisterRoutes(r loader.Router) {
	r.Get("/products", h.HandleProducts)
	r.Post("/purchase", h.HandlePurchase)
}

func (h *Handler) HandleProducts(c *fiber.Ctx) (any, error) {
	return h.products, nil
}

func (h *Handler) HandlePurchase(c *fiber.Ctx) (any, error) {
	return nil, apperr.New(apperr.KindNotSupported, "purchases are not available in this build")
}
