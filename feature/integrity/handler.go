package integrity

import (
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/:owner", h.HandleCheck)
}

// HandleCheck runs all integrity checks over the owner's catalog.
// @Summary Check catalog integrity
// @Description Report orphan recipe lines, unsyncable variants, stale composite costs and bad margins.
// @Tags integrity
// @Produce json
// @Param owner path string true "Catalog owner"
// @Success 200 {object} Report "Integrity report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/{owner} [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Check(c.Context(), owner)
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}
