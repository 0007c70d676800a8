package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/api"
	"github.com/dgnsrekt/invest_desk/internal/buy"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/config"
	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/dgnsrekt/invest_desk/internal/journal"
	"github.com/dgnsrekt/invest_desk/internal/netutil"
	"github.com/dgnsrekt/invest_desk/internal/relay"
	"github.com/dgnsrekt/invest_desk/internal/stats"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.LoadController()
	if err != nil {
		slog.Error("failed to load controller config", "error", err)
		os.Exit(1)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		if _, writeErr := io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n"); writeErr != nil {
			slog.Debug("logger setup stderr write failed", "error", writeErr)
		}
		os.Exit(1)
	}

	slog.Info("desk_controller config loaded",
		"bind_addr", cfg.BindAddr,
		"port_auto_fallback", cfg.PortAutoFallback,
		"port_candidates", cfg.PortCandidates,
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
		"catalog_file", cfg.CatalogFile,
		"counters_file", cfg.CountersFile,
		"journal_dir", cfg.JournalDir,
		"page_idle_ttl", cfg.PageIdleTTL,
		"confirm_webhook", cfg.ConfirmWebhookURL != "",
	)

	opts := controller.Options{IdleTTL: cfg.PageIdleTTL}

	if cfg.CatalogFile != "" {
		opts.Catalog, err = catalog.Load(cfg.CatalogFile)
		if err != nil {
			slog.Error("failed to load catalog file", "file", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
	}
	if cfg.CountersFile != "" {
		opts.Counters, err = stats.Load(cfg.CountersFile)
		if err != nil {
			slog.Error("failed to load counters file", "file", cfg.CountersFile, "error", err)
			os.Exit(1)
		}
	}
	if cfg.ConfirmWebhookURL != "" {
		opts.Confirmer = buy.MultiConfirmer{
			buy.AckConfirmer{},
			&buy.WebhookConfirmer{Endpoint: cfg.ConfirmWebhookURL, Timeout: cfg.ConfirmTimeout},
		}
	}

	var jw *journal.Writer
	if cfg.JournalDir != "" {
		jw = journal.NewWriter(cfg.JournalDir, 256, 10)
		opts.Journal = jw
	}

	broker := relay.NewBroker()
	opts.Events = broker

	svc, err := controller.NewService(opts)
	if err != nil {
		slog.Error("failed to build desk service", "error", err)
		os.Exit(1)
	}

	ln, err := netutil.Listen(cfg.BindAddr, netutil.ParseCandidates(cfg.PortCandidates, cfg.BindAddr), cfg.PortAutoFallback)
	if err != nil {
		slog.Error("failed to bind", "preferred", cfg.BindAddr, "error", err)
		os.Exit(1)
	}
	addr := ln.Addr().String()

	srv := &http.Server{Handler: api.NewServer(svc, broker), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		slog.Info("desk_controller listening", "addr", addr, "view", "http://"+addr+"/pages/new", "docs", "http://"+addr+"/docs")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("desk_controller server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("desk_controller shutdown failed", "error", err)
	}
	if jw != nil {
		if err := jw.Close(); err != nil {
			slog.Debug("journal close failed", "error", err)
		}
	}
	if err := svc.Close(); err != nil {
		slog.Debug("service close failed", "error", err)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
