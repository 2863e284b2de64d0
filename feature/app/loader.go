package app

import "app-webserver/core/loader"

// Feature implements loader.Feature for /api/app.
type Feature struct {
	handler *Handler
}

// NewFeature creates the app feature.
func NewFeature(version string, providers []AdProvider) *Feature {
	return &Feature{handler: NewHandler(NewService(version, providers))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "app"
}

// Register registers the feature's routes.
func (f *Feature) Register(r loader.Router) {
	f.handler.RegisterRoutes(r)
}
