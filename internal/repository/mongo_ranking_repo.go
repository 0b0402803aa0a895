package repository

import (
	"context"
	"errors"
	"fmt"

	"diffgame_seeder/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// таблицы лидеров в коллекции MongoDB, документ {gameId, singlePlayer, multiPlayer}
type MongoRankingRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoRankingRepository(client *mongo.Client, database, collection string) *MongoRankingRepository {
	return &MongoRankingRepository{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// EnsureIndexes создает уникальный индекс по gameId
func (r *MongoRankingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gameId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("gameId_unique"),
	})
	if err != nil {
		return fmt.Errorf("create gameId index: %w", err)
	}
	return nil
}

func (r *MongoRankingRepository) Upsert(ctx context.Context, rankings *domain.GameRankings) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"gameId": rankings.GameID},
		rankings,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MongoRankingRepository) Get(ctx context.Context, gameID int) (*domain.GameRankings, error) {
	var out domain.GameRankings
	err := r.coll.FindOne(ctx, bson.M{"gameId": gameID}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *MongoRankingRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
