package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// AuthCookieName is the session cookie set at login/registration.
const AuthCookieName = "marketplace-token"

// TokenFromRequest extracts the session token from the Authorization header
// or, failing that, the auth cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(AuthCookieName)
}

// AuthRequired is a Fiber middleware resolving the session to a user. The
// resolved user is stored in locals under "user", with "user_id" and
// "username" kept alongside for handlers that only need identity.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		user, err := authService.Session(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		return c.Next()
	}
}
