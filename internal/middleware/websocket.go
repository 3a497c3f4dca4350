package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// GameIDKey holds the parsed game id in locals, surviving the upgrade.
const GameIDKey = "wsGameID"

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid
// WebSocket connection attempts for a well-formed game id and a known player.
func WebSocketUpgrade(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID, err := strconv.ParseUint(c.Params("gameId"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// Set by EnsurePlayerID
		if PlayerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		logger.Debug("websocket upgrade",
			zap.Uint64("game_id", gameID),
			zap.String("player_id", string(PlayerID(c))))
		c.Locals(GameIDKey, gameID)
		return c.Next()
	}
}

// GameID returns the id stored by WebSocketUpgrade.
func GameID(c *fiber.Ctx) uint64 {
	id, _ := c.Locals(GameIDKey).(uint64)
	return id
}
