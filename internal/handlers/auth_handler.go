package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/middleware"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleSession)
}

// RegisterRequest is the request body for registration. Store fields are
// optional; setting both registers a seller and provisions their tenant.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	StoreName string `json:"store_name" validate:"omitempty,min=3,max=100"`
	StoreSlug string `json:"store_slug" validate:"omitempty,min=3,max=100,lowercase,required_with=StoreName"`
}

// HandleRegister handles new user (and optionally seller) registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, token, err := h.authService.RegisterUser(services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		StoreName: req.StoreName,
		StoreSlug: req.StoreSlug,
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, "Registration failed", err)
	}

	setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respondError(c, "Authentication failed", err)
	}

	setAuthCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleSession resolves the current session, or reports none.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	tokenString := middleware.TokenFromRequest(c)
	if tokenString == "" {
		return c.JSON(fiber.Map{"user": nil})
	}
	user, err := h.authService.Session(tokenString)
	if err != nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": user})
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}
