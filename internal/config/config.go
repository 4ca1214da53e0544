// Package config loads narrator settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// Save backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds every tunable the narrator reads at startup
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	FireworksAPIKey   string `env:"FIREWORKS_API_KEY"`
	ElevenLabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `env:"ELEVENLABS_VOICE_ID" envDefault:"21m00Tcm4TlvDq8ikWAM"`
	ImageStyle        string `env:"IMAGE_STYLE" envDefault:"pixel"`
	TTSEnabled        bool   `env:"TTS_ENABLED" envDefault:"false"`

	SaveBackend string        `env:"SAVE_BACKEND" envDefault:"file"`
	SaveDir     string        `env:"SAVE_DIR" envDefault:".saves"`
	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"narrator.db"`
	RollTTL     time.Duration `env:"ROLL_TTL" envDefault:"24h"`

	HistoryWindow    int           `env:"HISTORY_WINDOW" envDefault:"10"`
	RetryAttempts    int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryBackoff     time.Duration `env:"RETRY_BACKOFF" envDefault:"1s"`
	AutoplayInterval time.Duration `env:"AUTOPLAY_INTERVAL" envDefault:"3s"`
	DiceDelay        time.Duration `env:"DICE_DELAY" envDefault:"3500ms"`
	Temperature      float32       `env:"TEMPERATURE" envDefault:"0.7"`
	MaxOutputTokens  int32         `env:"MAX_OUTPUT_TOKENS" envDefault:"8000"`

	LogFile  string `env:"LOG_FILE" envDefault:"narrator.log"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and backend-specific requirements
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("save_backend", c.SaveBackend, []string{BackendFile, BackendRedis, BackendSQLite}, vb)
	errors.ValidateRange("history_window", c.HistoryWindow, 1, 100, vb)
	errors.ValidateRange("retry_attempts", c.RetryAttempts, 1, 10, vb)

	switch c.SaveBackend {
	case BackendFile:
		errors.ValidateRequired("save_dir", c.SaveDir, vb)
	case BackendRedis:
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	case BackendSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}

	errors.ValidateNotNegative("retry_backoff", c.RetryBackoff, vb)
	errors.ValidateNotNegative("dice_delay", c.DiceDelay, vb)
	errors.ValidateNotNegative("autoplay_interval", c.AutoplayInterval, vb)
	errors.ValidateEnum("image_style", c.ImageStyle, providers.ImageStyles(), vb)

	return vb.Build()
}

// RequireCompletion reports a missing LLM key before a game starts
func (c *Config) RequireCompletion() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return errors.Unauthenticated("GEMINI_API_KEY is not set")
	}
	return nil
}

// SlogLevel maps LogLevel onto slog levels, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
