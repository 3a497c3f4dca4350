package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// MemoryStore is a GameStore held in process memory.
type MemoryStore struct {
	games   map[uint64]*model.Game
	counter uint64
	mu      sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[uint64]*model.Game),
	}
}

func (ms *MemoryStore) Create(_ context.Context, creator model.PlayerID) (*model.Game, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.counter++
	game := model.NewGame(ms.counter, creator)
	ms.games[game.ID] = game
	return game.Clone(), nil
}

func (ms *MemoryStore) Load(_ context.Context, id uint64) (*model.Game, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	game, exists := ms.games[id]
	if !exists {
		return nil, fmt.Errorf("game %d: %w", id, ErrGameNotFound)
	}
	return game.Clone(), nil
}

func (ms *MemoryStore) Save(_ context.Context, game *model.Game) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.games[game.ID]; !exists {
		return fmt.Errorf("game %d: %w", game.ID, ErrGameNotFound)
	}
	ms.games[game.ID] = game.Clone()
	return nil
}

func (ms *MemoryStore) ListByPlayer(_ context.Context, player model.PlayerID) ([]*model.Game, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	games := []*model.Game{}
	for _, game := range ms.games {
		if game.HasPlayer(player) {
			games = append(games, game.Clone())
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}
