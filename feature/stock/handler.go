package stock

import (
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stock syncs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stock routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stock")
	group.Post("/:owner/sync", h.HandleSyncStock)
}

// HandleSyncStock copies remote stock levels onto local variants.
// @Summary Sync stock
// @Description Copy remote stock levels onto local variants matched by SKU.
// @Tags stock
// @Produce json
// @Param owner path string true "Catalog owner"
// @Success 200 {object} Summary "Sync summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stock/{owner}/sync [post]
func (h *Handler) HandleSyncStock(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Sync(c.Context(), owner)
	if err != nil {
		l.Error("Stock sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}
