// Package store keeps games between calls, keyed by their numeric id.
package store

import (
	"context"
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
)

var ErrGameNotFound = errors.New("game not found")

// GameStore loads and saves games. Load returns ErrGameNotFound for unknown
// ids. Returned games are copies; callers Save to persist changes.
type GameStore interface {
	// Create allocates the next game id and stores a new game for creator.
	Create(ctx context.Context, creator model.PlayerID) (*model.Game, error)
	Load(ctx context.Context, id uint64) (*model.Game, error)
	Save(ctx context.Context, game *model.Game) error
	ListByPlayer(ctx context.Context, player model.PlayerID) ([]*model.Game, error)
}
