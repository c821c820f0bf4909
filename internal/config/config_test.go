package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm/logger"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MAPAPYLIFE_DB_DSN", "postgres://localhost/mapa")
	t.Setenv("RATE_LIMIT", "120")
	t.Setenv("RATE_LIMIT_PERIOD", "30s")
	t.Setenv("REBUILD_WORKERS", "not-a-number")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.AllowOrigin != "*" || cfg.Sources.DataDir != "./data" {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Server, cfg.Sources)
	}
	if cfg.RateLimit.Limit != 120 || cfg.RateLimit.Period != 30*time.Second {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Sources.Workers != 4 {
		t.Fatalf("expected invalid worker count to fall back to 4, got %d", cfg.Sources.Workers)
	}
	if !cfg.Database.AutoMigrate {
		t.Fatalf("expected auto migrate")
	}
	if len(cfg.Hierarchy.CityNames) != 8 || cfg.Hierarchy.Exceptions[102] != 90 || cfg.Hierarchy.Threshold != 0.5 {
		t.Fatalf("unexpected default hierarchy %+v", cfg.Hierarchy)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MAPAPYLIFE_DB_DSN", "")
	if err := os.WriteFile(".env", []byte("MAPAPYLIFE_DB_DSN=postgres://dotenv/mapa\nAUTH_TOKEN=abc\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("AUTH_TOKEN")
	})
	// godotenv does not override variables already present in the environment
	_ = os.Unsetenv("MAPAPYLIFE_DB_DSN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.DSN != "postgres://dotenv/mapa" || cfg.GameAPI.AuthToken != "abc" {
		t.Fatalf("expected values from .env, got %+v %+v", cfg.Database, cfg.GameAPI)
	}
}

func TestLoad_RequiresDSN(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MAPAPYLIFE_DB_DSN", "")
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadHierarchy_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.yaml")
	body := "city_names: [Los Santos, San Fierro]\nexceptions:\n  12: 90\nthreshold: 0.6\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write hierarchy: %v", err)
	}
	h, err := LoadHierarchy(path)
	if err != nil {
		t.Fatalf("LoadHierarchy error: %v", err)
	}
	if len(h.CityNames) != 2 || h.Exceptions[12] != 90 || h.Threshold != 0.6 {
		t.Fatalf("unexpected hierarchy %+v", h)
	}
}

func TestParseHierarchy_Rejects(t *testing.T) {
	cases := map[string]string{
		"no cities":   "threshold: 0.5\n",
		"duplicate":   "city_names: [A, A]\n",
		"threshold":   "city_names: [A]\nthreshold: 1.5\n",
		"invalid":     "city_names: [A\n",
		"empty entry": "city_names: ['']\n",
	}
	for name, body := range cases {
		if _, err := ParseHierarchy([]byte(body)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoggingConfig_Levels(t *testing.T) {
	if got := (LoggingConfig{Level: "DEBUG"}).HertzLevel(); got != hlog.LevelDebug {
		t.Fatalf("expected debug, got %v", got)
	}
	if got := (LoggingConfig{Level: "error"}).GormLevel(); got != logger.Error {
		t.Fatalf("expected gorm error level, got %v", got)
	}
	if got := (LoggingConfig{Level: "???"}).HertzLevel(); got != hlog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", got)
	}
}
