// Package config loads process configuration from HOOPS_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr            string        `env:"HOOPS_ADDR" envDefault:":8080"`
	DBPath          string        `env:"HOOPS_DB_PATH" envDefault:"data/hoops.db"`
	DataRoot        string        `env:"HOOPS_DATA_ROOT" envDefault:"data"`
	LeagueDataset   string        `env:"HOOPS_LEAGUE_DATASET" envDefault:"league/dataset.json"`
	LeagueBaseURL   string        `env:"HOOPS_LEAGUE_BASE_URL"`
	LeaguePath      string        `env:"HOOPS_LEAGUE_PATH" envDefault:"/players/stats"`
	ArchiveRoot     string        `env:"HOOPS_ARCHIVE_ROOT" envDefault:"ledger"`
	Participants    int           `env:"HOOPS_DEFAULT_PARTICIPANTS" envDefault:"2"`
	SessionCookie   string        `env:"HOOPS_SESSION_COOKIE" envDefault:"hoops_session"`
	LogLevel        string        `env:"HOOPS_LOG_LEVEL" envDefault:"info"`
	LogDevelopment  bool          `env:"HOOPS_LOG_DEVELOPMENT" envDefault:"false"`
	MCPEnabled      bool          `env:"HOOPS_MCP_ENABLED" envDefault:"false"`
	MCPPath         string        `env:"HOOPS_MCP_PATH" envDefault:"/mcp"`
	MCPAPIKey       string        `env:"HOOPS_MCP_API_KEY"`
	MCPRequireAuth  bool          `env:"HOOPS_MCP_REQUIRE_AUTH" envDefault:"true"`
	AuthHeader      string        `env:"HOOPS_AUTH_HEADER" envDefault:"X-API-Key"`
	ShutdownTimeout time.Duration `env:"HOOPS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config and checks the values the server cannot run without.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Participants < 2 {
		return fmt.Errorf("HOOPS_DEFAULT_PARTICIPANTS must be at least 2, got %d", c.Participants)
	}
	if c.MCPEnabled && c.MCPRequireAuth && c.MCPAPIKey == "" {
		return fmt.Errorf("HOOPS_MCP_API_KEY is required when MCP auth is enabled")
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("HOOPS_SESSION_COOKIE must not be empty")
	}
	return nil
}
