package push

import (
	"catalog-manager/core/archive"
	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Push feature. It is disabled when the remote
// store is not configured.
func NewFeature(store *catalog.Store, client remote.Client, cfg remote.Config, archiver *archive.Archiver, logger *zap.Logger) *Feature {
	svc := NewService(store, client, cfg, archiver, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, enabled: cfg.StoreID != ""}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "push"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
