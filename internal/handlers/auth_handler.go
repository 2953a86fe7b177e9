package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	cartService *services.CartService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cartService *services.CartService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/google", h.HandleGoogleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if _, err := h.authService.RegisterUser(c.Context(), req.UserName, req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "User already exists with the same email!",
			})
		}
		log.Printf("Error registering user: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
	})
}

// LoginRequest represents the request body for password login. GuestID
// references a pre-login cart to fold into the account's cart.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	GuestID  string `json:"guestId"`
}

// HandleLogin authenticates an email/password pair, merges any guest cart
// and issues the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.VerifyPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid email or password",
			})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return serverError(c)
	}

	return h.finishLogin(c, user, req.GuestID, "Logged in successfully")
}

// GoogleLoginRequest represents the request body for Google login.
type GoogleLoginRequest struct {
	GoogleToken string `json:"googleToken" validate:"required"`
	GuestID     string `json:"guestId"`
}

// HandleGoogleLogin authenticates a Google ID token, creating the account on
// first sign-in, then merges any guest cart and issues the session cookie.
func (h *AuthHandler) HandleGoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.VerifyGoogleToken(c.Context(), req.GoogleToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGoogleToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid Google token",
			})
		}
		log.Printf("Error during google login: %v", err)
		return serverError(c)
	}

	return h.finishLogin(c, user, req.GuestID, "Logged in successfully via Google")
}

// finishLogin performs the post-authentication steps shared by both login
// paths: guest cart merge, token issuance and the session cookie.
func (h *AuthHandler) finishLogin(c *fiber.Ctx, user *models.User, guestID, message string) error {
	cart, err := h.cartService.MergeGuestCart(c.Context(), user.ID, guestID)
	if err != nil {
		log.Printf("Error merging cart for user %s: %v", user.ID, err)
		return serverError(c)
	}

	token, err := h.authService.IssueSessionToken(user)
	if err != nil {
		log.Printf("Error issuing session token for user %s: %v", user.ID, err)
		return serverError(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.authService.TokenTTL()),
		HTTPOnly: true,
		Secure:   true,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"user": fiber.Map{
			"id":       user.ID,
			"role":     user.Role,
			"email":    user.Email,
			"userName": user.UserName,
		},
		"cart": cart.Items,
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// HandleCheckAuth reports the authenticated identity stored by the session
// middleware. Registered behind AuthRequired.
func (h *AuthHandler) HandleCheckAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Authenticated user!",
		"user": fiber.Map{
			"id":       c.Locals("user_id"),
			"role":     c.Locals("role"),
			"email":    c.Locals("email"),
			"userName": c.Locals("userName"),
		},
	})
}
