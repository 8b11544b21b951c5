package catalog

import (
	"strconv"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog/:owner")
	group.Get("/items", h.HandleListItems)
	group.Get("/items/lookup", h.HandleLookupItems)
	group.Post("/items", h.HandleCreateItem)
	group.Post("/recipe-lines", h.HandleAddRecipeLine)
	group.Delete("/recipe-lines/:id", h.HandleRemoveRecipeLine)
	group.Post("/recalculate", h.HandleRecalculate)
}

// HandleListItems returns the owner's full catalog.
// @Summary List items
// @Description List every item of the owner's catalog.
// @Tags catalog
// @Produce json
// @Param owner path string true "Catalog owner"
// @Success 200 {array} models.Item "Items"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{owner}/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListItems(c.Context(), owner)
	if err != nil {
		l.Error("Item listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleLookupItems searches items by name or SKU fragment.
// @Summary Look up items
// @Description Search the owner's items by name or SKU fragment.
// @Tags catalog
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param q query string true "Search fragment"
// @Success 200 {array} models.Item "Matching items"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{owner}/items/lookup [get]
func (h *Handler) HandleLookupItems(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.LookupItems(c.Context(), owner, c.Query("q"))
	if err != nil {
		l.Error("Item lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleCreateItem stores a new catalog item.
// @Summary Create item
// @Description Create a product, variant or ingredient in the owner's catalog.
// @Tags catalog
// @Accept json
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param request body models.Item true "Item"
// @Success 201 {object} models.Item "Created item"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{owner}/items [post]
func (h *Handler) HandleCreateItem(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.service.CreateItem(c.Context(), owner, &item); err != nil {
		l.Error("Item creation failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleAddRecipeLine stores a new recipe line under a composite item.
// @Summary Add recipe line
// @Description Add a component line to a composite item's recipe.
// @Tags catalog
// @Accept json
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param request body models.RecipeLine true "Recipe line"
// @Success 201 {object} models.RecipeLine "Created line"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /catalog/{owner}/recipe-lines [post]
func (h *Handler) HandleAddRecipeLine(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	var line models.RecipeLine
	if err := c.BodyParser(&line); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.service.AddRecipeLine(c.Context(), owner, &line); err != nil {
		l.Error("Recipe line creation failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleRemoveRecipeLine deletes a recipe line.
// @Summary Remove recipe line
// @Description Delete one recipe line from the owner's catalog.
// @Tags catalog
// @Produce json
// @Param owner path string true "Catalog owner"
// @Param id path int true "Recipe line id"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{owner}/recipe-lines/{id} [delete]
func (h *Handler) HandleRemoveRecipeLine(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid recipe line id",
		})
	}

	if err := h.service.RemoveRecipeLine(c.Context(), owner, id); err != nil {
		l.Error("Recipe line deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRecalculate resolves all composite costs for the owner.
// @Summary Recalculate composite costs
// @Description Walk all recipe graphs and refresh cached composite costs.
// @Tags catalog
// @Produce json
// @Param owner path string true "Catalog owner"
// @Success 200 {object} Result "Recalculation result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{owner}/recalculate [post]
func (h *Handler) HandleRecalculate(c *fiber.Ctx) error {
	owner := c.Params("owner")
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.RecalculateCosts(c.Context(), owner)
	if err != nil {
		l.Error("Composite recalculation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}
