package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"collection-manager/core/media"
	"collection-manager/core/token"
	"collection-manager/feature/auth/oauth"
	"collection-manager/feature/catalog/ludopedia"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the auth feature.
func NewFeature(db *gorm.DB, tokens *token.Manager, oauthCfg oauth.Config, ludo *ludopedia.Client, mediaClient media.Client, bucket, frontendURL string, logger *zap.Logger) *Feature {
	svc := NewService(db, tokens, oauth.NewGoogle(oauthCfg), ludo, oauthCfg, mediaClient, bucket, logger)
	h := NewHandler(svc, frontendURL)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auth"
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
