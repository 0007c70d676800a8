// Package config reads desk settings from the environment and an optional
// .env file.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ControllerConfig holds configuration for desk_controller.
type ControllerConfig struct {
	BindAddr          string
	PortCandidates    string
	PortAutoFallback  bool
	LogLevel          string
	LogFile           string
	CatalogFile       string
	CountersFile      string
	JournalDir        string
	PageIdleTTL       time.Duration
	ConfirmWebhookURL string
	ConfirmTimeout    time.Duration
}

// LoadController reads controller configuration.
func LoadController() (*ControllerConfig, error) {
	loadDotEnv()

	cfg := &ControllerConfig{
		BindAddr:          getEnvOrDefault("DESK_BIND_ADDR", "127.0.0.1:8190"),
		PortCandidates:    getEnvOrDefault("DESK_PORT_CANDIDATES", "8191,8192,8193"),
		PortAutoFallback:  getEnvBoolOrDefault("DESK_PORT_AUTO_FALLBACK", true),
		LogLevel:          strings.ToLower(getEnvOrDefault("DESK_LOG_LEVEL", "info")),
		LogFile:           getEnvOrDefault("DESK_LOG_FILE", "logs/desk_controller.log"),
		CatalogFile:       os.Getenv("DESK_CATALOG_FILE"),
		CountersFile:      os.Getenv("DESK_COUNTERS_FILE"),
		JournalDir:        os.Getenv("DESK_JOURNAL_DIR"),
		PageIdleTTL:       time.Duration(getEnvIntOrDefault("DESK_PAGE_IDLE_TTL_MIN", 30)) * time.Minute,
		ConfirmWebhookURL: os.Getenv("DESK_CONFIRM_WEBHOOK_URL"),
		ConfirmTimeout:    time.Duration(getEnvIntOrDefault("DESK_CONFIRM_TIMEOUT_MS", 3000)) * time.Millisecond,
	}
	if cfg.PageIdleTTL < time.Minute {
		cfg.PageIdleTTL = time.Minute
	}
	if cfg.ConfirmTimeout < 100*time.Millisecond {
		cfg.ConfirmTimeout = 100 * time.Millisecond
	}
	return cfg, nil
}

// ProbeConfig holds configuration for desk_probe.
type ProbeConfig struct {
	BaseURL       string
	CDPAddress    string
	CDPPort       int
	LaunchBrowser bool
	ProfileDir    string
	Category      string
	Filter        string
}

// LoadProbe reads probe configuration.
func LoadProbe() (*ProbeConfig, error) {
	loadDotEnv()

	return &ProbeConfig{
		BaseURL:       strings.TrimRight(getEnvOrDefault("DESK_BASE_URL", "http://127.0.0.1:8190"), "/"),
		CDPAddress:    getEnvOrDefault("CHROMIUM_CDP_ADDRESS", "127.0.0.1"),
		CDPPort:       getEnvIntOrDefault("CHROMIUM_CDP_PORT", 9220),
		LaunchBrowser: getEnvBoolOrDefault("PROBE_LAUNCH_BROWSER", false),
		ProfileDir:    getEnvOrDefault("PROBE_PROFILE_DIR", "./.probe_profile"),
		Category:      getEnvOrDefault("PROBE_CATEGORY", "US Stocks"),
		Filter:        getEnvOrDefault("PROBE_FILTER", "aapl"),
	}, nil
}

// CDPURL returns the DevTools HTTP endpoint used by chromedp's remote allocator.
func (c *ProbeConfig) CDPURL() string {
	return "http://" + c.CDPAddress + ":" + strconv.Itoa(c.CDPPort)
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
