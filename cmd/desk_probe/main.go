package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgnsrekt/invest_desk/internal/automation"
	"github.com/dgnsrekt/invest_desk/internal/browser"
	"github.com/dgnsrekt/invest_desk/internal/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.LoadProbe()
	if err != nil {
		slog.Error("failed to load probe config", "error", err)
		os.Exit(1)
	}
	slog.Info("desk_probe config loaded",
		"base_url", cfg.BaseURL,
		"cdp_url", cfg.CDPURL(),
		"launch_browser", cfg.LaunchBrowser,
		"category", cfg.Category,
		"filter", cfg.Filter,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	var launcher *browser.Launcher
	if cfg.LaunchBrowser {
		launcher = browser.NewLauncher(browser.Config{
			CDPAddress: cfg.CDPAddress,
			CDPPort:    cfg.CDPPort,
			ProfileDir: cfg.ProfileDir,
			Headless:   true,
		})
		if err := launcher.Launch(ctx); err != nil {
			slog.Error("failed to launch browser", "error", err)
			stop()
			os.Exit(1)
		}
	}

	code := run(ctx, cfg)
	if launcher != nil {
		launcher.Stop()
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.ProbeConfig) int {
	driver, err := automation.Connect(ctx, cfg.CDPURL(), cfg.BaseURL)
	if err != nil {
		slog.Error("failed to connect to browser", "cdp_url", cfg.CDPURL(), "error", err)
		return 1
	}
	defer driver.Close()

	report, err := automation.Probe(driver, cfg.Category, cfg.Filter)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(report); encErr != nil {
		slog.Debug("report write failed", "error", encErr)
	}
	if err != nil {
		slog.Error("probe failed", "page_url", report.PageURL, "error", err)
		return 1
	}
	slog.Info("probe passed", "cards", report.Cards, "visible", len(report.VisibleSymbols), "bought", report.Bought)
	return 0
}
