package profiles

import (
	"app-webserver/core/loader"

	"go.uber.org/zap"
)

// Feature implements loader.Feature for /api/client-profiles.
type Feature struct {
	handler *Handler
}

// NewFeature creates the client profiles feature with an empty store.
func NewFeature(logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "client-profiles"
}

// Register registers the feature's routes.
func (f *Feature) Register(r loader.Router) {
	f.handler.RegisterRoutes(r)
}
