package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

// CategoryHandler handles HTTP requests for category management.
type CategoryHandler struct {
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalogService *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/category")
	categoryRoutes.Get("/", h.HandleGetAll)
	categoryRoutes.Post("/", h.HandleAdd)
	categoryRoutes.Post("/subcategory", h.HandleAddSubcategory)
	categoryRoutes.Delete("/:name", h.HandleDelete)
	categoryRoutes.Delete("/:parent/subcategory/:sub", h.HandleDeleteSubcategory)
}

// HandleGetAll lists every category.
func (h *CategoryHandler) HandleGetAll(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}

// CategoryRequest represents the request body for adding a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// HandleAdd registers a new parent category.
func (h *CategoryHandler) HandleAdd(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.catalogService.AddCategory(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrCategoryExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Category already exists",
			})
		}
		log.Printf("Error adding category: %v", err)
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

// SubcategoryRequest represents the request body for adding a subcategory.
type SubcategoryRequest struct {
	Parent string `json:"parent" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// HandleAddSubcategory appends a subcategory under an existing parent.
func (h *CategoryHandler) HandleAddSubcategory(c *fiber.Ctx) error {
	var req SubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.catalogService.AddSubcategory(c.Context(), req.Parent, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Parent category not found",
			})
		case errors.Is(err, services.ErrSubcategoryExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Subcategory already exists",
			})
		default:
			log.Printf("Error adding subcategory: %v", err)
			return serverError(c)
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

// HandleDelete removes a parent category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.catalogService.DeleteCategory(c.Context(), c.Params("name")); err != nil {
		log.Printf("Error deleting category: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully",
	})
}

// HandleDeleteSubcategory removes one subcategory from its parent.
func (h *CategoryHandler) HandleDeleteSubcategory(c *fiber.Ctx) error {
	category, err := h.catalogService.DeleteSubcategory(c.Context(), c.Params("parent"), c.Params("sub"))
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Parent category not found",
			})
		}
		log.Printf("Error deleting subcategory: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}
