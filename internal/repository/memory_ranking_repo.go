package repository

import (
	"context"
	"sync"

	"diffgame_seeder/internal/domain"
)

// хранилище в памяти для пробных запусков (DATABASE_URL=memory://) и тестов
type MemoryRankingRepository struct {
	mu   sync.Mutex
	docs map[int]domain.GameRankings
}

func NewMemoryRankingRepository() *MemoryRankingRepository {
	return &MemoryRankingRepository{docs: make(map[int]domain.GameRankings)}
}

func (r *MemoryRankingRepository) Upsert(ctx context.Context, rankings *domain.GameRankings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[rankings.GameID] = cloneRankings(*rankings)
	return nil
}

func (r *MemoryRankingRepository) Get(ctx context.Context, gameID int) (*domain.GameRankings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[gameID]
	if !ok {
		return nil, nil
	}
	out := cloneRankings(doc)
	return &out, nil
}

func (r *MemoryRankingRepository) Close(ctx context.Context) error {
	return nil
}

func cloneRankings(in domain.GameRankings) domain.GameRankings {
	return domain.GameRankings{
		GameID:       in.GameID,
		SinglePlayer: append([]domain.UsersScore(nil), in.SinglePlayer...),
		MultiPlayer:  append([]domain.UsersScore(nil), in.MultiPlayer...),
	}
}
