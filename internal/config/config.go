package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы выставления сложности
const (
	DifficultyFixed    = "fixed"
	DifficultyComputed = "computed"
)

type Config struct {
	DatabaseURL        string
	DatabaseName       string
	RankingsCollection string
	DBTimeout          time.Duration

	DataDir string

	// без GAME_COUNT количество спрашивается у пользователя,
	// Seed == 0 значит взять от текущего времени
	GameCount      int
	GameCountSet   bool
	Seed           int64
	DifficultyMode string

	MetricsTextfile string

	LogLevel string
	LogJSON  bool
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        envOr(getenv, "DATABASE_URL", "memory://"),
		DatabaseName:       envOr(getenv, "DATABASE_NAME", "GAME_DATA"),
		RankingsCollection: envOr(getenv, "RANKINGS_COLLECTION", "rankings"),
		DataDir:            envOr(getenv, "DATA_DIR", "./server/data"),
		DifficultyMode:     strings.ToLower(envOr(getenv, "DIFFICULTY_MODE", DifficultyFixed)),
		MetricsTextfile:    getenv("METRICS_TEXTFILE"),
		LogLevel:           envOr(getenv, "LOG_LEVEL", "info"),
		LogJSON:            getenv("LOG_FORMAT") == "json",
	}

	timeout, err := time.ParseDuration(envOr(getenv, "DB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("DB_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DB_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.DBTimeout = timeout

	if v := getenv("GAME_COUNT"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("GAME_COUNT: %w", err)
		}
		cfg.GameCount = n
		cfg.GameCountSet = true
	}

	if v := getenv("GENERATOR_SEED"); v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("GENERATOR_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	switch cfg.DifficultyMode {
	case DifficultyFixed, DifficultyComputed:
	default:
		return nil, fmt.Errorf("DIFFICULTY_MODE must be %q or %q, got %q", DifficultyFixed, DifficultyComputed, cfg.DifficultyMode)
	}

	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
