package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"diffgame_seeder/internal/domain"
	"diffgame_seeder/internal/game"
	"diffgame_seeder/internal/logger"
	"diffgame_seeder/internal/metrics"
	"diffgame_seeder/internal/render"
	"diffgame_seeder/internal/repository"
	"diffgame_seeder/internal/storage"
)

const defaultDBTimeout = 10 * time.Second

var ErrOutputMismatch = errors.New("seeded output mismatch")

// Итог запуска сидера
type Summary struct {
	Games      int
	Rectangles int
	Duration   time.Duration
}

// Seeder генерирует игры "найди отличия": json, таблицу лидеров и два bmp на игру.
// Работает строго последовательно, не для конкурентного использования
type Seeder struct {
	rankings repository.RankingRepository
	files    *storage.FileStorage
	rng      *rand.Rand

	metrics           *metrics.Metrics
	log               *slog.Logger
	computeDifficulty bool
	dbTimeout         time.Duration
}

// NewSeeder создает сидер. rng - единственный источник случайности,
// с фиксированным seed запуск полностью воспроизводим
func NewSeeder(rankings repository.RankingRepository, files *storage.FileStorage, rng *rand.Rand) *Seeder {
	return &Seeder{
		rankings:  rankings,
		files:     files,
		rng:       rng,
		metrics:   metrics.New(),
		log:       logger.Get(),
		dbTimeout: defaultDBTimeout,
	}
}

func (s *Seeder) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

func (s *Seeder) SetLogger(l *slog.Logger) {
	s.log = l
}

// SetComputedDifficulty включает расчет сложности вместо фиксированного "Facile"
func (s *Seeder) SetComputedDifficulty(enabled bool) {
	s.computeDifficulty = enabled
}

func (s *Seeder) SetDBTimeout(d time.Duration) {
	if d > 0 {
		s.dbTimeout = d
	}
}

// Run создает каталоги и игры с id 1..count. Первая ошибка прерывает запуск,
// уже записанные игры остаются как есть
func (s *Seeder) Run(ctx context.Context, count int) (Summary, error) {
	start := time.Now()
	summary, err := s.run(ctx, count)
	summary.Duration = time.Since(start)
	s.metrics.ObserveRun(summary.Duration, err)
	return summary, err
}

func (s *Seeder) run(ctx context.Context, count int) (Summary, error) {
	var summary Summary

	if err := s.files.EnsureDirs(); err != nil {
		return summary, fmt.Errorf("ошибка создания каталогов: %w", err)
	}

	if count < 0 {
		s.log.Warn("negative game count, nothing to generate", "count", count)
		return summary, nil
	}

	for id := 1; id <= count; id++ {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("запуск прерван перед игрой %d: %w", id, err)
		}

		rects, err := s.SeedGame(ctx, id)
		if err != nil {
			return summary, fmt.Errorf("игра %d: %w", id, err)
		}
		summary.Games++
		summary.Rectangles += rects
	}
	return summary, nil
}

// SeedGame генерирует и сохраняет одну игру, возвращает число различий
func (s *Seeder) SeedGame(ctx context.Context, id int) (int, error) {
	rects := game.GenerateDifferences(s.rng)
	if err := game.ValidateDifferences(rects); err != nil {
		return 0, err
	}

	difficulty := domain.DifficultyEasy
	if s.computeDifficulty {
		difficulty = game.ClassifyDifficulty(rects)
	}

	data := game.NewGameData(id, rects, difficulty)
	if err := s.files.WriteGameData(data); err != nil {
		return 0, err
	}
	s.metrics.FilesWritten.WithLabelValues("json").Inc()

	if err := s.upsertRankings(ctx, id); err != nil {
		return 0, fmt.Errorf("ошибка записи таблицы лидеров: %w", err)
	}

	if err := s.files.WriteImage(id, storage.FileTypeOriginalImage, render.RenderOriginal(rects, s.rng)); err != nil {
		return 0, err
	}
	s.metrics.FilesWritten.WithLabelValues(string(storage.FileTypeOriginalImage)).Inc()

	if err := s.files.WriteImage(id, storage.FileTypeModifiedImage, render.RenderModified()); err != nil {
		return 0, err
	}
	s.metrics.FilesWritten.WithLabelValues(string(storage.FileTypeModifiedImage)).Inc()

	s.metrics.GamesGenerated.Inc()
	s.metrics.RectanglesGenerated.Add(float64(len(rects)))

	s.log.Debug("game seeded",
		"game_id", id,
		"differences", len(rects),
		"difficulty", difficulty,
	)
	return len(rects), nil
}

func (s *Seeder) upsertRankings(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	if err := s.rankings.Upsert(ctx, domain.NewSeedRankings(id)); err != nil {
		return err
	}
	s.metrics.RankingUpserts.Inc()
	return nil
}

// Verify перечитывает игры 1..count с диска и из хранилища и проверяет
// что они соответствуют тому, что должен был записать Run
func (s *Seeder) Verify(ctx context.Context, count int) error {
	for id := 1; id <= count; id++ {
		if err := s.verifyGame(ctx, id); err != nil {
			return fmt.Errorf("игра %d: %w", id, err)
		}
	}
	return nil
}

func (s *Seeder) verifyGame(ctx context.Context, id int) error {
	data, err := s.files.ReadGameData(id)
	if err != nil {
		return err
	}
	if data.ID != id || data.NumberOfDifferences != len(data.Differences) {
		return fmt.Errorf("%w: id=%d numberOfDifferences=%d differences=%d",
			ErrOutputMismatch, data.ID, data.NumberOfDifferences, len(data.Differences))
	}

	rects := make([]domain.Rectangle, 0, len(data.Differences))
	for _, d := range data.Differences {
		if len(d.Rectangles) != 1 {
			return fmt.Errorf("%w: difference with %d rectangles", ErrOutputMismatch, len(d.Rectangles))
		}
		rects = append(rects, d.Rectangles[0])
	}
	if err := game.ValidateDifferences(rects); err != nil {
		return err
	}

	for _, t := range []storage.FileType{storage.FileTypeOriginalImage, storage.FileTypeModifiedImage} {
		img, err := s.files.ReadImage(id, t)
		if err != nil {
			return err
		}
		if b := img.Bounds(); b.Dx() != domain.CanvasWidth || b.Dy() != domain.CanvasHeight {
			return fmt.Errorf("%w: %s is %dx%d", ErrOutputMismatch, t, b.Dx(), b.Dy())
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	rankings, err := s.rankings.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка чтения таблицы лидеров: %w", err)
	}
	if rankings == nil {
		return fmt.Errorf("%w: no leaderboard document", ErrOutputMismatch)
	}
	seeds := len(domain.SeedScores())
	if len(rankings.SinglePlayer) != seeds || len(rankings.MultiPlayer) != seeds {
		return fmt.Errorf("%w: leaderboard has %d/%d entries, want %d per mode",
			ErrOutputMismatch, len(rankings.SinglePlayer), len(rankings.MultiPlayer), seeds)
	}
	return nil
}
