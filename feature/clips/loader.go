package clips

import (
	"clip-catalog/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the clip catalog feature.
func NewFeature(store *Store, client storage.Client, bucket string, logger *zap.Logger) *Feature {
	svc := NewService(store, client, bucket, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Service returns the clips service for collaborating features.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "clips"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
