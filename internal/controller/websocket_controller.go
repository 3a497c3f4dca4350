package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// RegisterRoutes mounts /ws/game/:gameId.
func (wsc *WebSocketController) RegisterRoutes(router fiber.Router, origins []string) {
	router.Get("/ws/game/:gameId",
		middleware.EnsurePlayerID(wsc.logger),
		middleware.WebSocketUpgrade(wsc.logger),
		websocket.New(wsc.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}))
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.GameIDKey).(uint64)
	playerID, _ := c.Locals(middleware.PlayerIDKey).(model.PlayerID)
	logger := wsc.logger.With(zap.Uint64("game_id", gameID), zap.String("player_id", string(playerID)))
	ctx := context.Background()

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(ctx, gameID, playerID, c); err != nil {
		logger.Info("failed to register connection", zap.Error(err))
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read error", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		if err := wsc.handleMessage(ctx, gameID, playerID, message); err != nil {
			logger.Debug("handle error", zap.Error(err))
			if err := wsc.gameService.SendError(gameID, playerID, err.Error()); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches one client message. Successful moves reach the
// client through the state broadcast.
func (wsc *WebSocketController) handleMessage(ctx context.Context, gameID uint64, playerID model.PlayerID, raw []byte) error {
	var msg ws.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.MakeMove(ctx, gameID, playerID, service.MoveRequest{
			From:      move.From,
			To:        move.To,
			Promotion: move.Promotion,
		})
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError writes to a connection that never got registered, so nothing
// else writes to it concurrently.
func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := c.WriteJSON(msg); err != nil {
		wsc.logger.Debug("write error", zap.Error(err))
	}
}
