package pricing

import (
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for pricing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pricing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/pricing")
	group.Post("/:owner/compute", h.HandleCompute)
}

// ComputeRequest is the body of a price computation request.
type ComputeRequest struct {
	Inputs
	// RoundingStep overrides the owner's stored rounding step when set.
	RoundingStep *float64 `json:"rounding_step"`
}

// HandleCompute computes the full price breakdown for one set of inputs.
// @Summary Compute prices
// @Description Compute unit cost, channel prices and per-100g prices from cost and margin inputs.
// @Tags pricing
// @Accept json
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param request body ComputeRequest true "Cost and margin inputs"
// @Success 200 {object} Breakdown "Price breakdown"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /pricing/{owner}/compute [post]
func (h *Handler) HandleCompute(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	var req ComputeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	breakdown, err := h.service.Compute(c.Context(), owner, req.Inputs, req.RoundingStep)
	if err != nil {
		l.Error("Price computation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(breakdown)
}
