package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/classgather-backend/internal/models"
)

const SessionKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Session, error)
}

func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				models.CodedErrorResponse(models.CodeUnauthorized, "Authorization header is required"))
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(
				models.CodedErrorResponse(models.CodeUnauthorized, "Invalid authorization header format"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				models.CodedErrorResponse(models.CodeUnauthorized, "Invalid token"))
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}
