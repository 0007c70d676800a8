package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/config"
	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/dgnsrekt/invest_desk/internal/stats"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// newService builds an in-process desk from the same settings as
// desk_controller.
func newService() (*controller.Service, error) {
	cfg, err := config.LoadController()
	if err != nil {
		return nil, err
	}
	opts := controller.Options{}
	if cfg.CatalogFile != "" {
		if opts.Catalog, err = catalog.Load(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}
	if cfg.CountersFile != "" {
		if opts.Counters, err = stats.Load(cfg.CountersFile); err != nil {
			return nil, err
		}
	}
	svc, err := controller.NewService(opts)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
}
