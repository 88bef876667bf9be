package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			return Unauthorized("Missing or malformed authorization header")
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserID is the error-returning variant for handlers that abort
// when no identity is present.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID := GetCurrentUserID(c)
	if userID == uuid.Nil {
		return uuid.Nil, Unauthorized("Authentication required")
	}
	return userID, nil
}
