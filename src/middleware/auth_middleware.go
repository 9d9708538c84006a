package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/lib"
)

// ProtectRoute checks for a valid JWT, loads the authenticated profile, and
// attaches it to the request context.
func ProtectRoute(c *fiber.Ctx) error {
	token := c.Cookies("jwt-scholaria")
	if token == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - no token provided"))
	}

	claims, err := lib.VerifyJWT(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - invalid token"))
	}

	rawID, ok := claims["userId"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - invalid token"))
	}

	profile, err := lib.FindProfileByID(uint(rawID))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not found"))
	}

	c.Locals("user", *profile)

	return c.Next()
}
