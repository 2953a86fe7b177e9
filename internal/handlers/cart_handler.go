package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for shop carts. The owner is either an
// authenticated user id or a client-generated guest id.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/:ownerId", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Put("/update", h.HandleUpdateItem)
	cartRoutes.Delete("/:ownerId/:productId", h.HandleRemoveItem)
}

// CartItemRequest represents a cart mutation. Exactly one of UserID/GuestID
// identifies the owner.
type CartItemRequest struct {
	UserID    string `json:"userId"`
	GuestID   string `json:"guestId"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// HandleGetCart returns the owner's cart; a missing cart reads as empty.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")

	cart, err := h.cartService.GetCart(c.Context(), ownerID)
	if err != nil {
		log.Printf("Error fetching cart for %s: %v", ownerID, err)
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart.Items,
	})
}

// HandleAddItem adds a product to the owner's cart, creating it lazily.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart, err := h.cartService.AddItem(c.Context(), req.UserID, req.GuestID, req.ProductID, req.Quantity)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"cart":    cart.Items,
	})
}

// HandleUpdateItem sets the quantity of an existing line item.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	ownerID := req.UserID
	if ownerID == "" {
		ownerID = req.GuestID
	}
	cart, err := h.cartService.UpdateItemQuantity(c.Context(), ownerID, req.ProductID, req.Quantity)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart item updated",
		"cart":    cart.Items,
	})
}

// HandleRemoveItem drops a line item from the owner's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	ownerID := c.Params("ownerId")
	productID := c.Params("productId")

	cart, err := h.cartService.RemoveItem(c.Context(), ownerID, productID)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
		"cart":    cart.Items,
	})
}

func (h *CartHandler) cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCartOwnerRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cart owner is required",
		})
	case errors.Is(err, repositories.ErrCartNotFound), errors.Is(err, repositories.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Cart item not found",
		})
	default:
		log.Printf("Cart operation failed: %v", err)
		return serverError(c)
	}
}
