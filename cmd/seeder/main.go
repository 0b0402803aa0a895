package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diffgame_seeder/internal/config"
	"diffgame_seeder/internal/console"
	"diffgame_seeder/internal/logger"
	"diffgame_seeder/internal/metrics"
	"diffgame_seeder/internal/repository"
	"diffgame_seeder/internal/service"
	"diffgame_seeder/internal/storage"

	"github.com/google/uuid"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.With("run_id", uuid.New().String()[:8])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdin, os.Stdout); err != nil {
		log.Error("seeding failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run держит все ресурсы запуска, defer закрывает их на любом выходе.
// in/out используются только если GAME_COUNT не задан
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("seeder starting",
		"version", Version,
		"database", repository.Scheme(cfg.DatabaseURL),
		"data_dir", cfg.DataDir,
		"seed", seed,
	)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	rankings, err := repository.Open(connectCtx, cfg.DatabaseURL, cfg.DatabaseName, cfg.RankingsCollection)
	cancel()
	if err != nil {
		return fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
		defer cancel()
		if err := rankings.Close(closeCtx); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	count := cfg.GameCount
	if !cfg.GameCountSet {
		count, err = console.ReadGameCount(in, out)
		if err != nil {
			return err
		}
	}

	files := storage.NewFileStorage(cfg.DataDir)
	m := metrics.New()

	seeder := service.NewSeeder(rankings, files, rand.New(rand.NewSource(seed)))
	seeder.SetMetrics(m)
	seeder.SetLogger(log)
	seeder.SetDBTimeout(cfg.DBTimeout)
	seeder.SetComputedDifficulty(cfg.DifficultyMode == config.DifficultyComputed)

	summary, runErr := seeder.Run(ctx, count)

	if cfg.MetricsTextfile != "" {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		log.Error("run aborted",
			"games_written", summary.Games,
			"duration", summary.Duration,
		)
		return runErr
	}

	if err := seeder.Verify(ctx, summary.Games); err != nil {
		return fmt.Errorf("проверка результата не пройдена: %w", err)
	}

	ids, err := files.ValidIDs()
	if err != nil {
		log.Warn("failed to list games on disk", "error", err)
	}
	log.Info("seeding finished",
		"games", summary.Games,
		"rectangles", summary.Rectangles,
		"games_on_disk", len(ids),
		"duration", summary.Duration,
	)
	return nil
}
