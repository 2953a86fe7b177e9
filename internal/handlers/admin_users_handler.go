package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

// AdminUsersHandler handles HTTP requests for back-office account management.
type AdminUsersHandler struct {
	userAdminService *services.UserAdminService
	validate         *validator.Validate
}

// NewAdminUsersHandler creates a new AdminUsersHandler.
func NewAdminUsersHandler(userAdminService *services.UserAdminService) *AdminUsersHandler {
	return &AdminUsersHandler{
		userAdminService: userAdminService,
		validate:         validator.New(),
	}
}

// RegisterRoutes registers the account management routes with the Fiber app.
func (h *AdminUsersHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/get", h.HandleList)
	userRoutes.Put("/update-role/:id", h.HandleUpdateRole)
	userRoutes.Delete("/delete/:id", h.HandleDelete)
}

// HandleList returns one page of accounts.
func (h *AdminUsersHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := h.userAdminService.ListUsers(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"data":        result.Users,
		"totalUsers":  result.TotalUsers,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
	})
}

// RoleRequest represents the request body for a role update.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// HandleUpdateRole sets the role of an account.
func (h *AdminUsersHandler) HandleUpdateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userAdminService.UpdateUserRole(c.Context(), c.Params("id"), req.Role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error updating user role: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User role updated successfully!",
	})
}

// HandleDelete removes an account.
func (h *AdminUsersHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.userAdminService.DeleteUser(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error deleting user: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully!",
	})
}
