// Package widget implements the stock browser panel: category rendering,
// live filtering and the buy hand-off.
package widget

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dgnsrekt/invest_desk/internal/buy"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/modal"
	"github.com/dgnsrekt/invest_desk/internal/types"
)

// State is the browser lifecycle state.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Catalog is the read side of the instrument catalog.
type Catalog interface {
	GetInstruments(category string) []catalog.Instrument
}

// Dispatcher forwards a selection. The browser passes itself as the closer.
type Dispatcher interface {
	Dispatch(ctx context.Context, closer buy.Closer, category, symbol, name string) (buy.Acknowledgment, error)
}

// View is a snapshot of what the panel shows.
type View struct {
	State             State        `json:"state"`
	Category          string       `json:"category,omitempty"`
	Title             string       `json:"title,omitempty"`
	SearchPlaceholder string       `json:"search_placeholder,omitempty"`
	SearchQuery       string       `json:"search_query"`
	Cards             []Card       `json:"cards"`
	NoResults         *Placeholder `json:"no_results,omitempty"`
	VisibleCount      int          `json:"visible_count"`
}

type session struct {
	category string
	query    string
	cards    []Card
	empty    bool
}

// Browser is the stock selection panel bound to one page's modals. It is
// not safe for concurrent use.
type Browser struct {
	catalog    Catalog
	modals     *modal.Controller
	dispatcher Dispatcher
	session    *session
}

// New binds a browser to the stock selection modal of modals. Any close of
// that modal, including an escape, discards the browsing session.
func New(cat Catalog, modals *modal.Controller, dispatcher Dispatcher) *Browser {
	b := &Browser{catalog: cat, modals: modals, dispatcher: dispatcher}
	modals.OnClose(modal.StockSelection, b.discard)
	return b
}

// OpenCategory renders category into a fresh session and shows the panel.
// Unknown categories render the empty state.
func (b *Browser) OpenCategory(category string) View {
	list := b.catalog.GetInstruments(category)
	s := &session{category: category, empty: len(list) == 0}
	for _, vm := range RenderCards(list) {
		s.cards = append(s.cards, Card{CardViewModel: vm, Visible: true})
	}
	b.session = s

	if err := b.modals.Open(modal.StockSelection); err != nil {
		slog.Warn("stock modal open failed", "error", err)
	}
	slog.Debug("stock browser opened", "category", category, "cards", len(s.cards))
	return b.View()
}

// ApplyFilter recomputes visibility of the rendered cards from query alone.
// It is a no-op while the panel is closed.
func (b *Browser) ApplyFilter(query string) View {
	s := b.session
	if s == nil {
		return b.View()
	}
	s.query = query
	for i := range s.cards {
		s.cards[i].Visible = Matches(s.cards[i].CardViewModel, query)
	}
	return b.View()
}

// SelectInstrument closes the panel and dispatches the buy intent. The
// instrument is re-resolved through the catalog, never from rendered cards.
func (b *Browser) SelectInstrument(ctx context.Context, symbol, name string) (buy.Acknowledgment, error) {
	defer b.Close()

	s := b.session
	if s == nil {
		return buy.Acknowledgment{}, types.Validation("stock browser is not open")
	}
	if b.dispatcher == nil {
		return buy.Acknowledgment{}, types.NewError(types.CodeInternal, "no buy dispatcher configured", nil)
	}
	return b.dispatcher.Dispatch(ctx, b, s.category, symbol, name)
}

// Close hides the panel and discards the session.
func (b *Browser) Close() {
	if b.modals.IsActive(modal.StockSelection) {
		if err := b.modals.Close(modal.StockSelection); err != nil {
			slog.Debug("stock modal close failed", "error", err)
		}
	}
	b.discard()
}

// State returns the lifecycle state.
func (b *Browser) State() State {
	if b.session == nil {
		return StateClosed
	}
	return StateOpen
}

// View snapshots the panel.
func (b *Browser) View() View {
	s := b.session
	if s == nil {
		return View{State: StateClosed, Cards: []Card{}}
	}
	v := View{
		State:             StateOpen,
		Category:          s.category,
		Title:             s.category,
		SearchPlaceholder: "Search " + strings.ToLower(s.category) + "...",
		SearchQuery:       s.query,
		Cards:             make([]Card, 0, len(s.cards)),
	}
	for _, c := range s.cards {
		c.ChartBars = append([]int(nil), c.ChartBars...)
		v.Cards = append(v.Cards, c)
		if c.Visible {
			v.VisibleCount++
		}
	}
	if s.empty {
		v.NoResults = &Placeholder{Icon: noResultsIcon, Message: noResultsMessage}
	}
	return v
}

func (b *Browser) discard() {
	if b.session != nil {
		slog.Debug("stock browser session discarded", "category", b.session.category)
	}
	b.session = nil
}
