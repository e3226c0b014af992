// Package auth provides the bearer-token guard protecting the API.
package auth

import (
	"strings"

	"collection-manager/core/token"

	"github.com/gofiber/fiber/v2"
)

// Config controls the auth middleware.
type Config struct {
	// Tokens verifies incoming access tokens.
	Tokens *token.Manager
	// Skip lists paths that bypass authentication (login, registration,
	// OAuth callbacks, docs). An entry matches its own path and any
	// subpath, on whole segments only.
	Skip []string
}

// skipped reports whether path matches prefix exactly or as a parent
// segment, so "/auth/google" covers "/auth/google/callback" but not
// "/auth/googlex".
func skipped(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// New creates the JWT bearer guard. On success the user id and username are
// stored in the request locals under "user_id" and "username".
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range cfg.Skip {
			if skipped(path, prefix) {
				return c.Next()
			}
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID, claims, err := cfg.Tokens.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// UserID extracts the authenticated user id from the request locals.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}
