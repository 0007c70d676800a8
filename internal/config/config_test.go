package config

import (
	"testing"
	"time"
)

func TestLoadControllerDefaults(t *testing.T) {
	for _, k := range []string{"DESK_BIND_ADDR", "DESK_LOG_LEVEL", "DESK_PAGE_IDLE_TTL_MIN", "DESK_CONFIRM_TIMEOUT_MS", "DESK_CONFIRM_WEBHOOK_URL"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadController()
	if err != nil {
		t.Fatalf("LoadController() error = %v", err)
	}
	if cfg.BindAddr != "127.0.0.1:8190" {
		t.Fatalf("BindAddr = %q", cfg.BindAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.PageIdleTTL != 30*time.Minute {
		t.Fatalf("PageIdleTTL = %v", cfg.PageIdleTTL)
	}
	if cfg.ConfirmWebhookURL != "" {
		t.Fatalf("ConfirmWebhookURL = %q; want empty", cfg.ConfirmWebhookURL)
	}
}

func TestLoadControllerOverridesAndClamps(t *testing.T) {
	t.Setenv("DESK_LOG_LEVEL", "DEBUG")
	t.Setenv("DESK_PAGE_IDLE_TTL_MIN", "0")
	t.Setenv("DESK_CONFIRM_TIMEOUT_MS", "5")
	t.Setenv("DESK_PORT_AUTO_FALLBACK", "false")
	t.Setenv("DESK_JOURNAL_DIR", "/tmp/journal")

	cfg, err := LoadController()
	if err != nil {
		t.Fatalf("LoadController() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q; want debug", cfg.LogLevel)
	}
	if cfg.PageIdleTTL != time.Minute {
		t.Fatalf("PageIdleTTL = %v; want 1m", cfg.PageIdleTTL)
	}
	if cfg.ConfirmTimeout != 100*time.Millisecond {
		t.Fatalf("ConfirmTimeout = %v; want 100ms", cfg.ConfirmTimeout)
	}
	if cfg.PortAutoFallback {
		t.Fatal("PortAutoFallback = true; want false")
	}
	if cfg.JournalDir != "/tmp/journal" {
		t.Fatalf("JournalDir = %q", cfg.JournalDir)
	}
}

func TestLoadProbe(t *testing.T) {
	t.Setenv("DESK_BASE_URL", "http://localhost:9000/")
	t.Setenv("CHROMIUM_CDP_PORT", "not-a-port")
	t.Setenv("PROBE_CATEGORY", "Treasury Bills")

	cfg, err := LoadProbe()
	if err != nil {
		t.Fatalf("LoadProbe() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CDPURL() != "http://127.0.0.1:9220" {
		t.Fatalf("CDPURL() = %q", cfg.CDPURL())
	}
	if cfg.Category != "Treasury Bills" {
		t.Fatalf("Category = %q", cfg.Category)
	}
}
