package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"diffgame_seeder/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// подмножество pgxpool.Pool, которое нужно репозиторию
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// таблицы лидеров в PostgreSQL, списки результатов лежат в JSONB
type PostgresRankingRepository struct {
	db    pgxPool
	table string
}

func NewPostgresRankingRepository(db pgxPool, table string) *PostgresRankingRepository {
	return &PostgresRankingRepository{db: db, table: pgx.Identifier{table}.Sanitize()}
}

// EnsureSchema создает таблицу, если ее нет
func (r *PostgresRankingRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+r.table+` (
			game_id       INTEGER PRIMARY KEY,
			single_player JSONB NOT NULL,
			multi_player  JSONB NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create rankings table: %w", err)
	}
	return nil
}

// вставляет или заменяет таблицу лидеров игры
func (r *PostgresRankingRepository) Upsert(ctx context.Context, rankings *domain.GameRankings) error {
	single, err := json.Marshal(rankings.SinglePlayer)
	if err != nil {
		return err
	}
	multi, err := json.Marshal(rankings.MultiPlayer)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO `+r.table+` (game_id, single_player, multi_player, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (game_id) DO UPDATE
		SET single_player = EXCLUDED.single_player,
		    multi_player = EXCLUDED.multi_player,
		    updated_at = now()
	`, rankings.GameID, single, multi)
	return err
}

// получает таблицу лидеров игры
func (r *PostgresRankingRepository) Get(ctx context.Context, gameID int) (*domain.GameRankings, error) {
	var single, multi []byte
	err := r.db.QueryRow(ctx, `
		SELECT single_player, multi_player
		FROM `+r.table+`
		WHERE game_id = $1
	`, gameID).Scan(&single, &multi)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	out := &domain.GameRankings{GameID: gameID}
	if err := json.Unmarshal(single, &out.SinglePlayer); err != nil {
		return nil, fmt.Errorf("decode single_player: %w", err)
	}
	if err := json.Unmarshal(multi, &out.MultiPlayer); err != nil {
		return nil, fmt.Errorf("decode multi_player: %w", err)
	}
	return out, nil
}

func (r *PostgresRankingRepository) Close(ctx context.Context) error {
	r.db.Close()
	return nil
}
