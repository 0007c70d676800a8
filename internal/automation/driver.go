// Package automation drives the desk's HTML view through Chromium over CDP,
// using only the card data hooks and documented class names.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	cardSelector    = ".stock-card"
	searchSelector  = "#stockSearch"
	modalSelector   = "#stockSelectionModal"
	noResultsSel    = ".no-results"
	ackSelector     = ".buy-ack"
	escapeSelector  = ".escape-form button"
	defaultStepWait = 10 * time.Second
)

// Card is a stock card as observed in the DOM.
type Card struct {
	Symbol  string
	Name    string
	Visible bool
}

// Driver controls one browser tab pointed at a desk_controller.
type Driver struct {
	baseURL     string
	step        time.Duration
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

// Connect attaches to the browser at cdpURL and opens a fresh tab.
func Connect(ctx context.Context, cdpURL, baseURL string) (*Driver, error) {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, cdpURL)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(tabCtx, network.Enable(), network.SetCacheDisabled(true)); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	slog.Info("probe attached to browser", "cdp_url", cdpURL, "base_url", baseURL)
	return &Driver{
		baseURL:     strings.TrimRight(baseURL, "/"),
		step:        defaultStepWait,
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
	}, nil
}

// Close closes the tab and releases the allocator.
func (d *Driver) Close() {
	d.tabCancel()
	d.allocCancel()
}

func (d *Driver) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(d.tabCtx, d.step)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// navigate runs actions that trigger a page load and waits for the response.
func (d *Driver) navigate(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(d.tabCtx, d.step)
	defer cancel()
	resp, err := chromedp.RunResponse(ctx, actions...)
	if err != nil {
		return err
	}
	if resp != nil && resp.Status >= 400 {
		return fmt.Errorf("%s returned %d", resp.URL, resp.Status)
	}
	return nil
}

// NewPage loads a fresh desk page and returns its URL.
func (d *Driver) NewPage() (string, error) {
	if err := d.navigate(chromedp.Navigate(d.baseURL + "/pages/new")); err != nil {
		return "", fmt.Errorf("open new page: %w", err)
	}
	var loc string
	if err := d.run(chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

// OpenCategory clicks the category button and waits for the stock modal.
func (d *Driver) OpenCategory(category string) error {
	sel := fmt.Sprintf(`button.category-button[data-category=%q]`, category)
	if err := d.navigate(chromedp.Click(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("open category %q: %w", category, err)
	}
	return d.run(chromedp.WaitVisible(modalSelector, chromedp.ByQuery))
}

// Filter types query into the search box and submits it.
func (d *Driver) Filter(query string) error {
	err := d.navigate(
		chromedp.SetValue(searchSelector, query, chromedp.ByQuery),
		chromedp.Submit(searchSelector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("filter %q: %w", query, err)
	}
	return nil
}

// Cards returns every rendered stock card.
func (d *Driver) Cards() ([]Card, error) {
	var nodes []*cdp.Node
	if err := d.run(chromedp.Nodes(cardSelector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	return cardsFromNodes(nodes), nil
}

// HasPlaceholder reports whether the no-results placeholder is rendered.
func (d *Driver) HasPlaceholder() (bool, error) {
	var nodes []*cdp.Node
	if err := d.run(chromedp.Nodes(noResultsSel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return false, fmt.Errorf("read placeholder: %w", err)
	}
	return len(nodes) > 0, nil
}

// Buy presses the buy button of the card with symbol and returns the
// acknowledgment text.
func (d *Driver) Buy(symbol string) (string, error) {
	sel := fmt.Sprintf(`%s[data-symbol=%q] .buy-button`, cardSelector, symbol)
	if err := d.navigate(chromedp.Click(sel, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("buy %s: %w", symbol, err)
	}
	var ack string
	if err := d.run(chromedp.Text(ackSelector, &ack, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read acknowledgment: %w", err)
	}
	return strings.TrimSpace(ack), nil
}

// Escape presses the escape control, closing the topmost modal.
func (d *Driver) Escape() error {
	if err := d.navigate(chromedp.Click(escapeSelector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("escape: %w", err)
	}
	return nil
}

func cardsFromNodes(nodes []*cdp.Node) []Card {
	cards := make([]Card, 0, len(nodes))
	for _, n := range nodes {
		style := strings.ReplaceAll(n.AttributeValue("style"), " ", "")
		cards = append(cards, Card{
			Symbol:  n.AttributeValue("data-symbol"),
			Name:    n.AttributeValue("data-name"),
			Visible: !strings.Contains(style, "display:none"),
		})
	}
	return cards
}

// VisibleSymbols returns the symbols of visible cards in order.
func VisibleSymbols(cards []Card) []string {
	var out []string
	for _, c := range cards {
		if c.Visible {
			out = append(out, c.Symbol)
		}
	}
	return out
}
