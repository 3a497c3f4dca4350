package middleware

import (
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlayerIDKey holds the caller's model.PlayerID in request locals.
const PlayerIDKey = "playerID"

// EnsurePlayerID resolves the caller's player id from the X-Player-ID header,
// falling back to the playerId query parameter, and rejects the request when
// neither is present.
func EnsurePlayerID(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			logger.Debug("request without player id", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// Store in context for this request
		c.Locals(PlayerIDKey, model.PlayerID(playerID))
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID.
func PlayerID(c *fiber.Ctx) model.PlayerID {
	id, _ := c.Locals(PlayerIDKey).(model.PlayerID)
	return id
}
