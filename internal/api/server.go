// Package api serves the desk over HTTP: a huma JSON API, a server-rendered
// HTML view and the event streams.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/dgnsrekt/invest_desk/internal/relay"
	"github.com/dgnsrekt/invest_desk/internal/search"
	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Service interface {
	ListCategories() []string
	GetInstruments(category string) []catalog.Instrument
	Search(query string, limit int) ([]search.Hit, error)
	Counters(elapsed time.Duration) []controller.CounterFrame
	CreatePage() controller.PageState
	GetPage(id string) (controller.PageState, error)
	DeletePage(id string) error
	OpenCategory(id, category string) (controller.PageState, error)
	ApplyFilter(id, query string) (controller.PageState, error)
	SelectInstrument(ctx context.Context, id, symbol, name string) (controller.PageState, error)
	CloseBrowser(id string) (controller.PageState, error)
	OpenModal(id, modalID string) (controller.PageState, error)
	CloseModal(id, modalID string) (controller.PageState, error)
	Escape(id string) (controller.PageState, error)
}

type pageIDInput struct {
	PageID string `path:"page_id" doc:"Page identifier returned by POST /api/v1/pages."`
}

type pageOutput struct {
	Body controller.PageState
}

// NewServer builds the HTTP handler. broker may be nil, in which case the
// event stream routes are not mounted.
func NewServer(svc Service, broker *relay.Broker) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("Invest Desk API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, docsHTML)
	})
	router.Get("/docs/events", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, eventsDocsHTML)
	})

	registerCatalogHandlers(api, svc)
	registerPageHandlers(api, svc)
	registerView(router, svc)

	if broker != nil {
		router.Get("/events", relay.SSEHandler(broker))
		router.Get("/events/ws", relay.WSHandler(broker))
	}

	return router
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Debug("html response write failed", "error", err)
	}
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var coded *types.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case types.CodeValidation:
			return huma.Error400BadRequest(coded.Message)
		case types.CodeNotFound:
			return huma.Error404NotFound(coded.Message)
		case types.CodeConfirmFailed:
			return huma.Error502BadGateway(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
