package collection

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collection-manager/feature/catalog"
	"collection-manager/feature/collection/reconcile"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the collection feature.
func NewFeature(db *gorm.DB, clients []catalog.Client, delay time.Duration, logger *zap.Logger) *Feature {
	engine := reconcile.NewEngine(db, logger)
	svc := NewService(db, engine, clients, delay, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "collection"
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
