package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// ColorHandler handles HTTP requests for color management.
type ColorHandler struct {
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewColorHandler creates a new ColorHandler.
func NewColorHandler(catalogService *services.CatalogService) *ColorHandler {
	return &ColorHandler{
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the color routes with the Fiber app.
func (h *ColorHandler) RegisterRoutes(router fiber.Router) {
	colorRoutes := router.Group("/color")
	colorRoutes.Get("/", h.HandleGetAll)
	colorRoutes.Post("/add", h.HandleAdd)
	colorRoutes.Delete("/delete/:id", h.HandleDelete)
}

// HandleGetAll lists every color.
func (h *ColorHandler) HandleGetAll(c *fiber.Ctx) error {
	colors, err := h.catalogService.ListColors(c.Context())
	if err != nil {
		log.Printf("Error listing colors: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    colors,
	})
}

// ColorRequest represents the request body for adding a color.
type ColorRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required,hexcolor"`
}

// HandleAdd registers a new color swatch.
func (h *ColorHandler) HandleAdd(c *fiber.Ctx) error {
	var req ColorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	color, err := h.catalogService.AddColor(c.Context(), req.Name, req.Value)
	if err != nil {
		if errors.Is(err, services.ErrColorExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Color already exists",
			})
		}
		log.Printf("Error adding color: %v", err)
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    color,
	})
}

// HandleDelete removes a color.
func (h *ColorHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.catalogService.DeleteColor(c.Context(), c.Params("id")); err != nil {
		log.Printf("Error deleting color: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Color deleted successfully",
	})
}
