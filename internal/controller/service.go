// Package controller owns the per-page desk sessions and wires the catalog,
// modal controller, stock browser and buy dispatcher together.
package controller

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/buy"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/journal"
	"github.com/dgnsrekt/invest_desk/internal/modal"
	"github.com/dgnsrekt/invest_desk/internal/relay"
	"github.com/dgnsrekt/invest_desk/internal/search"
	"github.com/dgnsrekt/invest_desk/internal/stats"
	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/dgnsrekt/invest_desk/internal/widget"
	"github.com/google/uuid"
)

const defaultIdleTTL = 30 * time.Minute

// Publisher receives desk events.
type Publisher interface {
	PublishJSON(feed string, v any)
}

// Journal records dispatched buy intents.
type Journal interface {
	Append(e journal.Entry) error
}

// Options configures a Service. Zero values fall back to the compiled-in
// catalog, default counters, acknowledgment-only confirmation and no events.
type Options struct {
	Catalog   *catalog.Catalog
	Counters  []stats.Counter
	Confirmer buy.Confirmer
	Events    Publisher
	Journal   Journal
	IdleTTL   time.Duration
}

// Service is the desk backend shared by the JSON API, the HTML view and the
// CLI.
type Service struct {
	catalog    *catalog.Catalog
	index      *search.Index
	counters   []stats.Counter
	dispatcher *buy.Dispatcher
	events     Publisher
	journal    Journal
	idleTTL    time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	pages map[string]*page
}

// NewService builds the service and its search index.
func NewService(opts Options) (*Service, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Seed()
	}
	counters := opts.Counters
	if len(counters) == 0 {
		counters = stats.Defaults
	}
	ttl := opts.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	idx, err := search.Build(cat)
	if err != nil {
		return nil, types.NewError(types.CodeInternal, "build search index", err)
	}
	return &Service{
		catalog:    cat,
		index:      idx,
		counters:   append([]stats.Counter(nil), counters...),
		dispatcher: buy.NewDispatcher(cat, opts.Confirmer),
		events:     opts.Events,
		journal:    opts.Journal,
		idleTTL:    ttl,
		now:        time.Now,
		pages:      make(map[string]*page),
	}, nil
}

// Close releases the search index.
func (s *Service) Close() error {
	return s.index.Close()
}

func (s *Service) requireNonEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return types.Validation("%s is required", fieldName)
	}
	return nil
}

// ListCategories returns the category names in display order.
func (s *Service) ListCategories() []string {
	return s.catalog.ListCategories()
}

// GetInstruments returns the instruments of category; unknown is empty.
func (s *Service) GetInstruments(category string) []catalog.Instrument {
	return s.catalog.GetInstruments(category)
}

// Search runs a cross-category search.
func (s *Service) Search(query string, limit int) ([]search.Hit, error) {
	hits, err := s.index.Search(query, limit)
	if err != nil {
		return nil, types.NewError(types.CodeInternal, "search failed", err)
	}
	return hits, nil
}

// CounterFrame is a counter with its display text at some elapsed time.
type CounterFrame struct {
	stats.Counter
	Display string `json:"display"`
}

// Counters returns each counter rendered at elapsed into its count-up.
func (s *Service) Counters(elapsed time.Duration) []CounterFrame {
	out := make([]CounterFrame, 0, len(s.counters))
	for _, c := range s.counters {
		out = append(out, CounterFrame{Counter: c, Display: c.Frame(elapsed)})
	}
	return out
}

// PageState is the observable state of one page.
type PageState struct {
	ID           string              `json:"id"`
	Browser      widget.View         `json:"browser"`
	ModalStack   []string            `json:"modal_stack"`
	ScrollLocked bool                `json:"scroll_locked"`
	LastAck      *buy.Acknowledgment `json:"last_ack,omitempty"`
	LastError    string              `json:"last_error,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CreatePage starts a new page and evicts idle ones.
func (s *Service) CreatePage() PageState {
	s.sweep()

	now := s.now()
	p := &page{
		id:      uuid.NewString(),
		modals:  modal.New(),
		created: now,
		touched: now,
	}
	p.browser = widget.New(s.catalog, p.modals, s.dispatcher)
	p.modals.OnChange(func(tr modal.Transition) { s.publishModal(p.id, tr) })

	s.mu.Lock()
	s.pages[p.id] = p
	s.mu.Unlock()

	slog.Info("page created", "page_id", p.id)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state()
}

// GetPage returns the state of page id.
func (s *Service) GetPage(id string) (PageState, error) {
	return s.withPage(id, func(p *page) error { return nil })
}

// DeletePage discards page id.
func (s *Service) DeletePage(id string) error {
	s.mu.Lock()
	_, ok := s.pages[id]
	delete(s.pages, id)
	s.mu.Unlock()
	if !ok {
		return types.NotFound("page %s", id)
	}
	slog.Info("page discarded", "page_id", id)
	return nil
}

// PageCount returns the number of live pages.
func (s *Service) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// OpenCategory opens the stock browser on category.
func (s *Service) OpenCategory(id, category string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		p.browser.OpenCategory(category)
		return nil
	})
}

// ApplyFilter filters the open browser. It is a no-op while closed.
func (s *Service) ApplyFilter(id, query string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		p.browser.ApplyFilter(query)
		return nil
	})
}

// SelectInstrument closes the browser and dispatches a buy intent. The
// returned state is valid even when err is non-nil.
func (s *Service) SelectInstrument(ctx context.Context, id, symbol, name string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		p.lastAck = nil
		ack, err := p.browser.SelectInstrument(ctx, symbol, name)
		if err != nil {
			return err
		}
		p.lastAck = &ack
		s.recordBuy(p.id, ack)
		return nil
	})
}

// CloseBrowser closes the stock browser.
func (s *Service) CloseBrowser(id string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		p.browser.Close()
		return nil
	})
}

// OpenModal opens modalID on page id.
func (s *Service) OpenModal(id, modalID string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		if modalID == modal.StockSelection && p.browser.State() == widget.StateClosed {
			return types.Validation("open %s through a category", modal.StockSelection)
		}
		return p.modals.Open(modalID)
	})
}

// CloseModal closes modalID on page id.
func (s *Service) CloseModal(id, modalID string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		return p.modals.Close(modalID)
	})
}

// Escape closes the topmost modal of page id, if any.
func (s *Service) Escape(id string) (PageState, error) {
	return s.withPage(id, func(p *page) error {
		if closed, ok := p.modals.CloseTopmostOnEscape(); ok {
			slog.Debug("escape closed modal", "page_id", p.id, "modal", closed)
		}
		return nil
	})
}

// withPage runs fn under the page lock and returns the resulting state.
func (s *Service) withPage(id string, fn func(p *page) error) (PageState, error) {
	p, err := s.lookup(id)
	if err != nil {
		return PageState{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.touched = s.now()
	p.lastErr = ""
	err = fn(p)
	if err != nil {
		p.lastErr = err.Error()
	}
	return p.state(), err
}

func (s *Service) lookup(id string) (*page, error) {
	if err := s.requireNonEmpty(id, "page_id"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	p, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, types.NotFound("page %s", id)
	}
	return p, nil
}

func (s *Service) sweep() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted []string
	for id, p := range s.pages {
		if p.idleSince().Before(cutoff) {
			delete(s.pages, id)
			evicted = append(evicted, id)
		}
	}
	if len(evicted) > 0 {
		sort.Strings(evicted)
		slog.Info("idle pages evicted", "count", len(evicted), "page_ids", evicted)
	}
}

func (s *Service) publishModal(pageID string, tr modal.Transition) {
	if s.events == nil {
		return
	}
	s.events.PublishJSON(relay.FeedModal, modalEvent{PageID: pageID, Transition: tr})
}

func (s *Service) recordBuy(pageID string, ack buy.Acknowledgment) {
	if s.events != nil {
		s.events.PublishJSON(relay.FeedBuyIntent, buyEvent{PageID: pageID, Acknowledgment: ack})
	}
	if s.journal != nil {
		if err := s.journal.Append(journal.FromAck(pageID, ack)); err != nil {
			slog.Warn("journal append failed", "page_id", pageID, "error", err)
		}
	}
}

type modalEvent struct {
	PageID string `json:"page_id"`
	modal.Transition
}

type buyEvent struct {
	PageID string `json:"page_id"`
	buy.Acknowledgment
}
