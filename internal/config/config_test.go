package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Participants != 2 {
		t.Errorf("Participants = %d, want 2", cfg.Participants)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.LeagueDataset != "league/dataset.json" {
		t.Errorf("LeagueDataset = %q", cfg.LeagueDataset)
	}
	if !cfg.MCPRequireAuth || cfg.MCPEnabled {
		t.Errorf("MCP defaults = enabled %v require auth %v", cfg.MCPEnabled, cfg.MCPRequireAuth)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOOPS_ADDR", ":9999")
	t.Setenv("HOOPS_DEFAULT_PARTICIPANTS", "4")
	t.Setenv("HOOPS_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Participants != 4 || cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("HOOPS_DEFAULT_PARTICIPANTS", "many")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("HOOPS_DEFAULT_PARTICIPANTS", "1")
	if _, err := Load(); err == nil {
		t.Error("expected error for one participant")
	}

	cfg := Config{Participants: 2, SessionCookie: "c", MCPEnabled: true, MCPRequireAuth: true}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for MCP without key")
	}
	cfg.MCPAPIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}
