package controller

import (
	"strconv"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

// RegisterRoutes mounts the REST API on router. Everything except player
// registration requires a player id.
func (gc *GameController) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api")
	api.Post("/player", gc.RegisterPlayer)

	authed := api.Group("", middleware.EnsurePlayerID(gc.logger))
	authed.Get("/player/games", gc.ListPlayerGames)

	gameRoutes := authed.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Post("/:gameId/join", gc.JoinGame)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Get("/:gameId/moves", gc.LegalMoves)
	gameRoutes.Get("/:gameId/board.svg", gc.BoardSVG)
}

// RegisterPlayer issues a fresh player id.
func (gc *GameController) RegisterPlayer(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"playerId": uuid.NewString(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	game, err := gc.gameService.CreateGame(c.UserContext(), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": game.ID,
		"color":   model.White,
		"state":   game.State(),
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID, ok := gc.gameID(c)
	if !ok {
		return nil
	}
	game, err := gc.gameService.JoinGame(c.UserContext(), gameID, middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   model.Black,
		"state":   game.State(),
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID, ok := gc.gameID(c)
	if !ok {
		return nil
	}
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	game, err := gc.gameService.MakeMove(c.UserContext(), gameID, middleware.PlayerID(c), req)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(game.State())
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID, ok := gc.gameID(c)
	if !ok {
		return nil
	}
	game, err := gc.gameService.GetGame(c.UserContext(), gameID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(game.State())
}

// LegalMoves lists the moves available to the side to move, optionally
// restricted to the piece on the "from" query square.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID, ok := gc.gameID(c)
	if !ok {
		return nil
	}
	moves, err := gc.gameService.LegalMoves(c.UserContext(), gameID, c.Query("from"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	gameID, ok := gc.gameID(c)
	if !ok {
		return nil
	}
	game, err := gc.gameService.GetGame(c.UserContext(), gameID)
	if err != nil {
		return gc.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	render.SVG(c, &game.Board, game.LastMove())
	return nil
}

func (gc *GameController) ListPlayerGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListPlayerGames(c.UserContext(), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	states := make([]model.GameState, 0, len(games))
	for _, g := range games {
		states = append(states, g.State())
	}
	return c.JSON(states)
}

// gameID parses the :gameId parameter, answering 400 itself when it is not a
// number.
func (gc *GameController) gameID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("gameId"), 10, 64)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid game id",
		})
		return 0, false
	}
	return id, true
}
