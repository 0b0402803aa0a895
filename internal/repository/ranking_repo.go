package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diffgame_seeder/internal/db"
	"diffgame_seeder/internal/domain"
)

var ErrUnsupportedDatabase = errors.New("unsupported database url scheme")

// RankingRepository хранит по одной таблице лидеров на игру
type RankingRepository interface {
	// Upsert заменяет документ игры или вставляет новый одной операцией
	Upsert(ctx context.Context, r *domain.GameRankings) error
	// Get возвращает nil, nil если документа нет
	Get(ctx context.Context, gameID int) (*domain.GameRankings, error)
	Close(ctx context.Context) error
}

// Scheme возвращает схему URL в нижнем регистре ("mongodb+srv", "postgres", ...)
func Scheme(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return ""
	}
	return strings.ToLower(scheme)
}

// Open выбирает хранилище по схеме DATABASE_URL и подключается к нему
func Open(ctx context.Context, databaseURL, databaseName, collection string) (RankingRepository, error) {
	switch Scheme(databaseURL) {
	case "mongodb", "mongodb+srv":
		client, err := db.ConnectMongo(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		repo := NewMongoRankingRepository(client, databaseName, collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(context.Background())
			return nil, err
		}
		return repo, nil

	case "postgres", "postgresql":
		pool, err := db.ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		repo := NewPostgresRankingRepository(pool, collection)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = repo.Close(context.Background())
			return nil, err
		}
		return repo, nil

	case "redis", "rediss":
		client, err := db.ConnectRedis(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return NewRedisRankingRepository(client, collection), nil

	case "memory":
		return NewMemoryRankingRepository(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, Scheme(databaseURL))
	}
}
