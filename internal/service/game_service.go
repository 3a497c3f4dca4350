package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"go.uber.org/zap"
)

// MoveRequest is a move as clients send it.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// GameService runs the game lifecycle on top of a store. Mutations of one
// game are serialized; different games proceed independently.
type GameService struct {
	store       store.GameStore
	connections *GameConnections
	sink        render.LineSink
	logger      *zap.Logger

	locksMu sync.Mutex
	locks   map[uint64]*gameLock
}

// gameLock is dropped from the map once nobody holds or waits for it.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameService(st store.GameStore, connections *GameConnections, sink render.LineSink, logger *zap.Logger) *GameService {
	if sink == nil {
		sink = render.Discard
	}
	return &GameService{
		store:       st,
		connections: connections,
		sink:        sink,
		logger:      logger,
		locks:       make(map[uint64]*gameLock),
	}
}

func (gs *GameService) lock(id uint64) func() {
	gs.locksMu.Lock()
	l, ok := gs.locks[id]
	if !ok {
		l = &gameLock{}
		gs.locks[id] = l
	}
	l.refs++
	gs.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		gs.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(gs.locks, id)
		}
		gs.locksMu.Unlock()
	}
}

func (gs *GameService) CreateGame(ctx context.Context, player model.PlayerID) (*model.Game, error) {
	game, err := gs.store.Create(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	gs.logger.Info("game created", zap.Uint64("game_id", game.ID), zap.String("player_id", string(player)))
	return game, nil
}

// JoinGame seats player as Black in game id.
func (gs *GameService) JoinGame(ctx context.Context, id uint64, player model.PlayerID) (*model.Game, error) {
	game, err := gs.join(ctx, id, player)
	if err != nil {
		return nil, err
	}
	gs.connections.Broadcast(game)
	return game, nil
}

func (gs *GameService) join(ctx context.Context, id uint64, player model.PlayerID) (*model.Game, error) {
	unlock := gs.lock(id)
	defer unlock()

	game, err := gs.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := game.JoinGame(player); err != nil {
		return nil, err
	}
	if err := gs.store.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	gs.logger.Info("player joined", zap.Uint64("game_id", id), zap.String("player_id", string(player)))
	return game, nil
}

// MakeMove applies a move for player and, once saved, prints the move and
// the resulting board to the service's line sink.
func (gs *GameService) MakeMove(ctx context.Context, id uint64, player model.PlayerID, req MoveRequest) (*model.Game, error) {
	game, err := gs.move(ctx, id, player, req)
	if err != nil {
		return nil, err
	}
	gs.connections.Broadcast(game)
	return game, nil
}

func (gs *GameService) move(ctx context.Context, id uint64, player model.PlayerID, req MoveRequest) (*model.Game, error) {
	unlock := gs.lock(id)
	defer unlock()

	game, err := gs.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := game.MakeMove(player, req.From, req.To, req.Promotion); err != nil {
		gs.logger.Debug("move rejected",
			zap.Uint64("game_id", id),
			zap.String("player_id", string(player)),
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return nil, err
	}
	if err := gs.store.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	last := game.LastMove()
	gs.logger.Info("move made",
		zap.Uint64("game_id", id),
		zap.String("player_id", string(player)),
		zap.Stringer("from", last.From),
		zap.Stringer("to", last.To),
		zap.Stringer("status", game.Status))
	gs.sink.PrintLine(fmt.Sprintf("Move made: %s -> %s", last.From, last.To))
	render.Board(gs.sink, &game.Board)
	if game.Status.IsTerminal() {
		gs.sink.PrintLine(fmt.Sprintf("Game ended: %s", game.Status))
	}
	return game, nil
}

func (gs *GameService) GetGame(ctx context.Context, id uint64) (*model.Game, error) {
	return gs.store.Load(ctx, id)
}

// ListPlayerGames returns every game player is seated in, by id.
func (gs *GameService) ListPlayerGames(ctx context.Context, player model.PlayerID) ([]*model.Game, error) {
	return gs.store.ListByPlayer(ctx, player)
}

// LegalMoves lists the legal moves of the side to move in game id. With a
// non-empty from, only moves of the piece on that square are listed.
func (gs *GameService) LegalMoves(ctx context.Context, id uint64, from string) ([]model.Move, error) {
	game, err := gs.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status != model.InProgress {
		return []model.Move{}, nil
	}
	var moves []model.Move
	if from == "" {
		moves = game.Board.LegalMoves(game.Board.ToMove)
	} else {
		sq, err := model.ParseSquare(from)
		if err != nil {
			return nil, err
		}
		moves = game.Board.LegalMovesFrom(sq)
	}
	if moves == nil {
		moves = []model.Move{}
	}
	return moves, nil
}

// PrintGame writes the summary of game id to the service's line sink.
func (gs *GameService) PrintGame(ctx context.Context, id uint64) error {
	game, err := gs.store.Load(ctx, id)
	if err != nil {
		return err
	}
	render.Game(gs.sink, game)
	return nil
}

// RegisterConnection subscribes conn to the state of game id. The
// subscription is taken under the game lock so no later state is missed.
func (gs *GameService) RegisterConnection(ctx context.Context, id uint64, player model.PlayerID, conn Conn) error {
	unlock := gs.lock(id)
	game, err := gs.store.Load(ctx, id)
	if err != nil {
		unlock()
		return err
	}
	sub, err := gs.connections.add(id, player, conn)
	unlock()
	if err != nil {
		return err
	}
	return gs.connections.deliver(game, player, sub)
}

func (gs *GameService) UnregisterConnection(id uint64, player model.PlayerID, conn Conn) {
	gs.connections.Unregister(id, player, conn)
}

// SendError reports a failed request to the websocket player holds in game.
func (gs *GameService) SendError(id uint64, player model.PlayerID, text string) error {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: text})
	if err != nil {
		return err
	}
	return gs.connections.Send(id, player, msg)
}
