package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// ProductHandler handles HTTP requests for products. Read routes serve the
// storefront; write routes are registered under the admin group.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterShopRoutes registers the public read routes.
func (h *ProductHandler) RegisterShopRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetAll)
	productRoutes.Get("/:id", h.HandleGetByID)
}

// RegisterAdminRoutes registers the back-office write routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleGetAll lists products, optionally filtered and sorted via query
// parameters.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		SortBy:      c.Query("sortBy"),
	}

	products, err := h.productService.GetAllProducts(c.Context(), filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// HandleGetByID returns one product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error fetching product: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleCreate adds a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.productService.CreateProduct(c.Context(), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleUpdate replaces an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.productService.UpdateProduct(c.Context(), &product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error updating product: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		log.Printf("Error deleting product: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
