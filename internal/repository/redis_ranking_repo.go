package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"diffgame_seeder/internal/domain"

	"github.com/redis/go-redis/v9"
)

// таблицы лидеров в Redis, ключ <prefix>:<gameId>, значение - json документа
type RedisRankingRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRankingRepository(client *redis.Client, prefix string) *RedisRankingRepository {
	return &RedisRankingRepository{client: client, prefix: prefix}
}

func (r *RedisRankingRepository) key(gameID int) string {
	return r.prefix + ":" + strconv.Itoa(gameID)
}

// SET атомарно заменяет значение, отдельное удаление не нужно
func (r *RedisRankingRepository) Upsert(ctx context.Context, rankings *domain.GameRankings) error {
	payload, err := json.Marshal(rankings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(rankings.GameID), payload, 0).Err()
}

func (r *RedisRankingRepository) Get(ctx context.Context, gameID int) (*domain.GameRankings, error) {
	payload, err := r.client.Get(ctx, r.key(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var out domain.GameRankings
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RedisRankingRepository) Close(ctx context.Context) error {
	return r.client.Close()
}
