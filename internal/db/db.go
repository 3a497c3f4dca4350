package db

import (
	"context"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GameDbClient struct {
	client            *mongo.Client
	GameCollection    *mongo.Collection
	CounterCollection *mongo.Collection
}

func (r *GameDbClient) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func NewDbClient(ctx context.Context, cfg *config.Configuration) (*GameDbClient, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Database.Address)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Database.Address, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s: %w", cfg.Database.Address, err)
	}

	database := client.Database(cfg.Database.DatabaseName)
	return &GameDbClient{
		client:            client,
		GameCollection:    database.Collection(cfg.Database.Collection),
		CounterCollection: database.Collection(cfg.Database.CounterCollection),
	}, nil
}
