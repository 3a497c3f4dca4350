package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chess-backend/internal/db"
	"github.com/benbeisheim/chess-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const gameCounterKey = "game_counter"

type counter struct {
	Key   string `bson:"_id"`
	Count uint64 `bson:"count"`
}

// MongoStore keeps one document per game, with ids drawn from a counter
// document incremented atomically.
type MongoStore struct {
	games    *mongo.Collection
	counters *mongo.Collection
	timeout  time.Duration
}

func NewMongoStore(client *db.GameDbClient, timeout time.Duration) *MongoStore {
	return &MongoStore{
		games:    client.GameCollection,
		counters: client.CounterCollection,
		timeout:  timeout,
	}
}

func (s *MongoStore) nextID(ctx context.Context) (uint64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var c counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": gameCounterKey},
		bson.M{"$inc": bson.M{"count": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("increment game counter: %w", err)
	}
	return c.Count, nil
}

func (s *MongoStore) Create(ctx context.Context, creator model.PlayerID) (*model.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}
	game := model.NewGame(id, creator)
	if _, err := s.games.InsertOne(ctx, game); err != nil {
		return nil, fmt.Errorf("insert game %d: %w", id, err)
	}
	return game, nil
}

func (s *MongoStore) Load(ctx context.Context, id uint64) (*model.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var game model.Game
	if err := s.games.FindOne(ctx, bson.M{"_id": id}).Decode(&game); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("game %d: %w", id, ErrGameNotFound)
		}
		return nil, fmt.Errorf("load game %d: %w", id, err)
	}
	return &game, nil
}

func (s *MongoStore) Save(ctx context.Context, game *model.Game) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.games.ReplaceOne(ctx, bson.M{"_id": game.ID}, game)
	if err != nil {
		return fmt.Errorf("save game %d: %w", game.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("game %d: %w", game.ID, ErrGameNotFound)
	}
	return nil
}

func (s *MongoStore) ListByPlayer(ctx context.Context, player model.PlayerID) ([]*model.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"white": player},
		bson.M{"black": player},
	}}
	cur, err := s.games.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find games for %s: %w", player, err)
	}
	games := []*model.Game{}
	if err := cur.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("decode games for %s: %w", player, err)
	}
	return games, nil
}
