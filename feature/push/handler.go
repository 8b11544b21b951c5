package push

import (
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for price pushes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the push routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/push")
	group.Post("/:owner/prices", h.HandlePushPrices)
}

// PushRequest selects what to push.
type PushRequest struct {
	// Scope is product or all; anything else is treated as all.
	Scope string `json:"scope"`
	// ProductID is required when scope is product.
	ProductID *int64 `json:"product_id"`
}

// HandlePushPrices pushes computed prices to the remote store.
// @Summary Push prices
// @Description Push locally computed prices to the remote store catalog.
// @Tags push
// @Accept json
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param request body PushRequest true "Push scope"
// @Success 200 {object} Report "Push report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /push/{owner}/prices [post]
func (h *Handler) HandlePushPrices(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	var req PushRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	report, err := h.service.Push(c.Context(), owner, req.Scope, req.ProductID)
	if err != nil {
		l.Error("Price push failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}
