package billing

import "app-webserver/core/loader"

// Feature implements loader.Feature for /api/billing.
type Feature struct {
	handler *Handler
}

// NewFeature creates the billing feature with no products.
func NewFeature() *Feature {
	return &Feature{handler: NewHandler(nil)}
}

func (f *Feature) Name() string {
	return "billing"
}

func (f *Feature) Register(r loader.Router) {
	f.handler.RegisterRoutes(r)
}
