package widget

import (
	"context"
	"testing"

	"github.com/dgnsrekt/invest_desk/internal/buy"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/modal"
	"github.com/dgnsrekt/invest_desk/internal/types"
)

type recordingConfirmer struct {
	intents []buy.Intent
}

func (r *recordingConfirmer) Confirm(_ context.Context, intent buy.Intent) error {
	r.intents = append(r.intents, intent)
	return nil
}

func newTestBrowser(t *testing.T) (*Browser, *modal.Controller, *recordingConfirmer) {
	t.Helper()
	return newBrowser()
}

func newBrowser() (*Browser, *modal.Controller, *recordingConfirmer) {
	cat := catalog.Seed()
	modals := modal.New()
	rec := &recordingConfirmer{}
	return New(cat, modals, buy.NewDispatcher(cat, rec)), modals, rec
}

func visibleSymbols(v View) []string {
	var out []string
	for _, c := range v.Cards {
		if c.Visible {
			out = append(out, c.Symbol)
		}
	}
	return out
}

func TestOpenUSStocksThenFilter(t *testing.T) {
	b, modals, _ := newTestBrowser(t)

	v := b.OpenCategory(catalog.USStocks)
	if v.State != StateOpen || len(v.Cards) != 6 || v.NoResults != nil {
		t.Fatalf("OpenCategory(US) = state %s, %d cards, placeholder %v; want open, 6, nil", v.State, len(v.Cards), v.NoResults)
	}
	if !modals.IsActive(modal.StockSelection) || !modals.ScrollLocked() {
		t.Fatalf("stock modal not active after OpenCategory")
	}

	v = b.ApplyFilter("aapl")
	if v.VisibleCount != 6 {
		t.Fatalf("ApplyFilter(aapl) visible = %d; want 6", v.VisibleCount)
	}

	v = b.ApplyFilter("zzz")
	if v.VisibleCount != 0 {
		t.Fatalf("ApplyFilter(zzz) visible = %d; want 0", v.VisibleCount)
	}
	if len(v.Cards) != 6 {
		t.Fatalf("ApplyFilter(zzz) cards = %d; want 6 hidden cards kept", len(v.Cards))
	}
	if v.NoResults != nil {
		t.Fatalf("ApplyFilter(zzz) added placeholder; want none")
	}
}

func TestTreasuryBillsFilter91(t *testing.T) {
	b, _, _ := newTestBrowser(t)
	v := b.OpenCategory(catalog.TreasuryBills)
	if len(v.Cards) != 3 {
		t.Fatalf("OpenCategory(T-Bills) cards = %d; want 3", len(v.Cards))
	}
	v = b.ApplyFilter("91")
	got := visibleSymbols(v)
	if len(got) != 1 || got[0] != "91D" {
		t.Fatalf("ApplyFilter(91) visible = %v; want [91D]", got)
	}
}

func TestUnknownCategoryRendersPlaceholderOnce(t *testing.T) {
	b, _, _ := newTestBrowser(t)
	v := b.OpenCategory("Crypto")
	if v.State != StateOpen {
		t.Fatalf("OpenCategory(unknown) state = %s; want open", v.State)
	}
	if len(v.Cards) != 0 {
		t.Fatalf("OpenCategory(unknown) cards = %d; want 0", len(v.Cards))
	}
	if v.NoResults == nil || v.NoResults.Message != "No stocks available" {
		t.Fatalf("OpenCategory(unknown) placeholder = %+v; want no-results", v.NoResults)
	}
	v = b.ApplyFilter("x")
	if v.NoResults == nil || len(v.Cards) != 0 {
		t.Fatalf("filter changed empty state: %+v", v)
	}
}

func TestOpenSetsTitlePlaceholderAndClearsQuery(t *testing.T) {
	b, _, _ := newTestBrowser(t)
	b.OpenCategory(catalog.NGStocks)
	b.ApplyFilter("mtn")

	v := b.OpenCategory(catalog.TreasuryBills)
	if v.Title != "Treasury Bills" {
		t.Fatalf("Title = %q; want %q", v.Title, "Treasury Bills")
	}
	if v.SearchPlaceholder != "Search treasury bills..." {
		t.Fatalf("SearchPlaceholder = %q; want %q", v.SearchPlaceholder, "Search treasury bills...")
	}
	if v.SearchQuery != "" || v.VisibleCount != 3 {
		t.Fatalf("reopen kept filter: query=%q visible=%d", v.SearchQuery, v.VisibleCount)
	}
}

func TestFilterMatchesNameOrSymbol(t *testing.T) {
	b, _, _ := newTestBrowser(t)
	b.OpenCategory(catalog.NGStocks)

	if got := visibleSymbols(b.ApplyFilter("NIGERIA")); len(got) != 2 || got[0] != "MTNN" || got[1] != "NESTLE" {
		t.Fatalf("ApplyFilter(NIGERIA) = %v; want [MTNN NESTLE]", got)
	}
	if got := visibleSymbols(b.ApplyFilter("gtc")); len(got) != 1 || got[0] != "GTCO" {
		t.Fatalf("ApplyFilter(gtc) = %v; want [GTCO]", got)
	}
	if got := b.ApplyFilter(""); got.VisibleCount != 4 {
		t.Fatalf("ApplyFilter(\"\") visible = %d; want 4", got.VisibleCount)
	}
}

func TestFilterWhileClosedIsNoop(t *testing.T) {
	b, _, _ := newTestBrowser(t)
	v := b.ApplyFilter("aapl")
	if v.State != StateClosed || len(v.Cards) != 0 {
		t.Fatalf("ApplyFilter() while closed = %+v; want closed empty view", v)
	}
}

func TestSelectInstrumentDispatchesAndCloses(t *testing.T) {
	b, modals, rec := newTestBrowser(t)
	b.OpenCategory(catalog.NGStocks)
	b.ApplyFilter("zzz")

	ack, err := b.SelectInstrument(context.Background(), "DANGCEM", "Dangote Cement")
	if err != nil {
		t.Fatalf("SelectInstrument() error = %v", err)
	}
	if ack.Message != "Buying Dangote Cement (DANGCEM)" {
		t.Fatalf("SelectInstrument() message = %q", ack.Message)
	}
	if b.State() != StateClosed || modals.IsActive(modal.StockSelection) || modals.ScrollLocked() {
		t.Fatalf("SelectInstrument() left panel open")
	}
	if len(rec.intents) != 1 || rec.intents[0].Category != catalog.NGStocks {
		t.Fatalf("intents = %+v; want one NG Stocks intent", rec.intents)
	}
}

func TestSelectUnknownInstrumentStillCloses(t *testing.T) {
	b, _, rec := newTestBrowser(t)
	b.OpenCategory(catalog.USStocks)
	_, err := b.SelectInstrument(context.Background(), "NOPE", "Nope")
	if !types.HasCode(err, types.CodeNotFound) {
		t.Fatalf("SelectInstrument(unknown) = %v; want %s", err, types.CodeNotFound)
	}
	if b.State() != StateClosed || len(rec.intents) != 0 {
		t.Fatalf("state=%s intents=%d; want closed and none", b.State(), len(rec.intents))
	}
}

func TestSelectWhileClosedIsRejected(t *testing.T) {
	b, _, rec := newTestBrowser(t)
	_, err := b.SelectInstrument(context.Background(), "AAPL", "Apple Inc")
	if !types.HasCode(err, types.CodeValidation) {
		t.Fatalf("SelectInstrument() while closed = %v; want %s", err, types.CodeValidation)
	}
	if len(rec.intents) != 0 {
		t.Fatalf("dispatched %d intents while closed; want 0", len(rec.intents))
	}
}

func TestEscapeDiscardsSession(t *testing.T) {
	b, modals, _ := newTestBrowser(t)
	_ = modals.Open(modal.Deposit)
	b.OpenCategory(catalog.USStocks)

	id, ok := modals.CloseTopmostOnEscape()
	if !ok || id != modal.StockSelection {
		t.Fatalf("CloseTopmostOnEscape() = %q, %v; want stock modal", id, ok)
	}
	if b.State() != StateClosed {
		t.Fatalf("State() = %s after escape; want closed", b.State())
	}
	if !modals.ScrollLocked() {
		t.Fatalf("deposit modal still open but scroll unlocked")
	}
}

func TestRenderCardMapping(t *testing.T) {
	vm := RenderCard(catalog.Instrument{Name: "MTN Nigeria", Symbol: "MTNN", Price: "₦245", Change: "-0.5%", Positive: false, SharesOrTag: "₦5.0T", Icon: "📱"})
	if vm.ChangeClass != ChangeNegative || vm.DataSymbol != "MTNN" || vm.DataName != "MTN Nigeria" || vm.Shares != "₦5.0T" {
		t.Fatalf("RenderCard() = %+v", vm)
	}
	if len(vm.ChartBars) != 7 || vm.ChartBars[0] != 40 || vm.ChartBars[6] != 85 {
		t.Fatalf("RenderCard() chart bars = %v", vm.ChartBars)
	}
}
