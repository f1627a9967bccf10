package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/config"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/utils"
)

const userContextKey = "currentUser"

// AuthMiddleware validates JWT tokens and loads the authenticated user into
// the request context. Inactive accounts are rejected here.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
			return err
		}

		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "account is disabled")
		}

		c.Locals(userContextKey, &user)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated user
// holds one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "not enough permissions")
	}
}

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if user, ok := value.(*models.User); ok {
		return user, true
	}

	return nil, false
}
