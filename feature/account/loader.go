package account

import (
	"app-webserver/core/loader"

	"go.uber.org/zap"
)

// Feature implements loader.Feature for /api/account.
type Feature struct {
	handler *Handler
}

// NewFeature creates the account feature, signed out.
func NewFeature(logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "account"
}

// Register registers the feature's routes.
func (f *Feature) Register(r loader.Router) {
	f.handler.RegisterRoutes(r)
}
