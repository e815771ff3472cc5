package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("UPCOMING_DUE_WINDOW_DAYS", "")
	t.Setenv("RECENT_TRANSACTIONS_LIMIT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("API_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.UpcomingDueWindow != 30*24*time.Hour {
		t.Errorf("expected 30 day window, got %v", cfg.UpcomingDueWindow)
	}
	if cfg.RecentTransactionsLimit != 5 {
		t.Errorf("expected recent limit 5, got %d", cfg.RecentTransactionsLimit)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.AllowedOrigins)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("expected local API URL, got %s", cfg.APIURL)
	}
	if cfg.LogLevel != "" {
		t.Errorf("expected empty log level so the env default applies, got %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("UPCOMING_DUE_WINDOW_DAYS", "14")
	t.Setenv("RECENT_TRANSACTIONS_LIMIT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn log level, got %s", cfg.LogLevel)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.DBDriver)
	}
	if cfg.UpcomingDueWindow != 14*24*time.Hour {
		t.Errorf("expected 14 day window, got %v", cfg.UpcomingDueWindow)
	}
	if cfg.RecentTransactionsLimit != 5 {
		t.Errorf("invalid limit should fall back to 5, got %d", cfg.RecentTransactionsLimit)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:3000" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}
