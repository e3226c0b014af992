package export

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-manager/core/logger"
	authmw "collection-manager/core/middleware/auth"
)

// Handler handles HTTP requests for sale list exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Post("/:channel", h.HandleExport)
}

// HandleExport renders the caller's sale list for one channel.
// @Summary Export sale list
// @Description Render the for-sale games as text for whatsapp, instagram, facebook or email.
// @Tags export
// @Accept json
// @Produce json
// @Param channel path string true "Output channel"
// @Param payload body Options false "Export options"
// @Success 200 {object} Rendered "Rendered text"
// @Failure 400 {object} map[string]string "Unknown channel"
// @Failure 404 {object} map[string]string "Nothing for sale"
// @Router /export/{channel} [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	channel := Channel(c.Params("channel"))
	if !channel.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown export channel"})
	}

	var opts Options
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}

	rendered, err := h.service.Render(c.Context(), authmw.UserID(c), channel, opts)
	if err != nil {
		if errors.Is(err, ErrNothingForSale) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	return c.JSON(rendered)
}
