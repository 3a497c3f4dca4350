package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"go.uber.org/zap"
)

var ErrDuplicateConnection = errors.New("connection already exists")

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// subscriber serializes writes to one connection and remembers the newest
// state version it was sent.
type subscriber struct {
	conn    Conn
	mu      sync.Mutex
	sent    bool
	version uint64
}

func (s *subscriber) send(msg ws.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// sendState writes a state message unless a newer state already went out.
func (s *subscriber) sendState(version uint64, msg ws.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent && version <= s.version {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	s.sent = true
	s.version = version
	return nil
}

// stateVersion grows with every join and every move of a game.
func stateVersion(game *model.Game) uint64 {
	v := uint64(len(game.History))
	if game.Black != "" {
		v++
	}
	return v
}

// GameConnections tracks the open websocket connections of every game,
// one per player per game.
type GameConnections struct {
	games  map[uint64]map[model.PlayerID]*subscriber
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewGameConnections(logger *zap.Logger) *GameConnections {
	return &GameConnections{
		games:  make(map[uint64]map[model.PlayerID]*subscriber),
		logger: logger,
	}
}

// Register adds conn for player in game and sends it the current state.
// A second connection for the same player is rejected; the healthy one is
// kept.
func (gc *GameConnections) Register(game *model.Game, player model.PlayerID, conn Conn) error {
	sub, err := gc.add(game.ID, player, conn)
	if err != nil {
		return err
	}
	return gc.deliver(game, player, sub)
}

func (gc *GameConnections) add(gameID uint64, player model.PlayerID, conn Conn) (*subscriber, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	conns, ok := gc.games[gameID]
	if !ok {
		conns = make(map[model.PlayerID]*subscriber)
		gc.games[gameID] = conns
	}
	if _, exists := conns[player]; exists {
		return nil, ErrDuplicateConnection
	}
	sub := &subscriber{conn: conn}
	conns[player] = sub
	gc.logger.Debug("connection registered",
		zap.Uint64("game_id", gameID), zap.String("player_id", string(player)))
	return sub, nil
}

// deliver sends the state of game to one new subscriber.
func (gc *GameConnections) deliver(game *model.Game, player model.PlayerID, sub *subscriber) error {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, game.State())
	if err != nil {
		return err
	}
	if err := sub.sendState(stateVersion(game), msg); err != nil {
		gc.drop(game.ID, player, sub)
		return err
	}
	return nil
}

// Unregister removes the connection of player, if it is still conn.
func (gc *GameConnections) Unregister(gameID uint64, player model.PlayerID, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	conns := gc.games[gameID]
	if sub, ok := conns[player]; ok && sub.conn == conn {
		delete(conns, player)
		if len(conns) == 0 {
			delete(gc.games, gameID)
		}
		gc.logger.Debug("connection unregistered",
			zap.Uint64("game_id", gameID), zap.String("player_id", string(player)))
	}
}

// Broadcast sends the state of game to everyone watching it. A subscriber
// that already got a newer state skips this one. Connections that fail to
// take the write are closed and dropped.
func (gc *GameConnections) Broadcast(game *model.Game) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, game.State())
	if err != nil {
		gc.logger.Error("encode game state", zap.Uint64("game_id", game.ID), zap.Error(err))
		return
	}

	gc.mu.RLock()
	targets := make(map[model.PlayerID]*subscriber, len(gc.games[game.ID]))
	for player, sub := range gc.games[game.ID] {
		targets[player] = sub
	}
	gc.mu.RUnlock()

	version := stateVersion(game)
	for player, sub := range targets {
		if err := sub.sendState(version, msg); err != nil {
			gc.logger.Warn("broadcast failed",
				zap.Uint64("game_id", game.ID), zap.String("player_id", string(player)), zap.Error(err))
			gc.drop(game.ID, player, sub)
		}
	}
}

// Send writes msg to the connection player holds in game, if any.
func (gc *GameConnections) Send(gameID uint64, player model.PlayerID, msg ws.Message) error {
	gc.mu.RLock()
	sub, ok := gc.games[gameID][player]
	gc.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := sub.send(msg); err != nil {
		gc.drop(gameID, player, sub)
		return err
	}
	return nil
}

// Count returns the number of open connections for a game.
func (gc *GameConnections) Count(gameID uint64) int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.games[gameID])
}

func (gc *GameConnections) drop(gameID uint64, player model.PlayerID, sub *subscriber) {
	gc.Unregister(gameID, player, sub.conn)
	sub.conn.Close()
}
