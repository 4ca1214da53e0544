package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-narrator/internal/config"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	// keep a developer's .env out of the test
	s.T().Chdir(s.T().TempDir())
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	s.T().Setenv("GEMINI_API_KEY", "key")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("gemini-2.5-flash", cfg.GeminiModel)
	s.Equal(config.BackendFile, cfg.SaveBackend)
	s.Equal(10, cfg.HistoryWindow)
	s.Equal(3, cfg.RetryAttempts)
	s.Equal(time.Second, cfg.RetryBackoff)
	s.Equal(3*time.Second, cfg.AutoplayInterval)
	s.Equal(3500*time.Millisecond, cfg.DiceDelay)
	s.NoError(cfg.RequireCompletion())
}

func (s *ConfigTestSuite) TestLoadOverrides() {
	s.T().Setenv("SAVE_BACKEND", "redis")
	s.T().Setenv("REDIS_ADDR", "cache:6379")
	s.T().Setenv("RETRY_BACKOFF", "10ms")
	s.T().Setenv("TTS_ENABLED", "true")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("cache:6379", cfg.RedisAddr)
	s.Equal(10*time.Millisecond, cfg.RetryBackoff)
	s.True(cfg.TTSEnabled)
}

func (s *ConfigTestSuite) TestLoadRejectsUnknownBackend() {
	s.T().Setenv("SAVE_BACKEND", "postgres")

	_, err := config.Load()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(errors.GetMessage(err), "save_backend: must be one of: file, redis, sqlite")
}

func (s *ConfigTestSuite) TestRequireCompletion() {
	cfg := &config.Config{}
	s.True(errors.IsUnauthenticated(cfg.RequireCompletion()))
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *config.Config) {}},
		{name: "zero history window", mutate: func(c *config.Config) { c.HistoryWindow = 0 }, wantErr: true},
		{name: "too many retries", mutate: func(c *config.Config) { c.RetryAttempts = 50 }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *config.Config) {
			c.SaveBackend = config.BackendSQLite
			c.SQLitePath = ""
		}, wantErr: true},
		{name: "negative dice delay", mutate: func(c *config.Config) { c.DiceDelay = -time.Second }, wantErr: true},
		{name: "unknown image style", mutate: func(c *config.Config) { c.ImageStyle = "crayon" }, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := &config.Config{
				SaveBackend:   config.BackendFile,
				SaveDir:       ".saves",
				ImageStyle:    "pixel",
				HistoryWindow: 10,
				RetryAttempts: 3,
			}
			tc.mutate(cfg)
			if tc.wantErr {
				s.Error(cfg.Validate())
			} else {
				s.NoError(cfg.Validate())
			}
		})
	}
}
