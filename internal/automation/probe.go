package automation

import (
	"fmt"
	"log/slog"
)

// Report summarises one probe run.
type Report struct {
	PageURL        string   `json:"page_url"`
	Category       string   `json:"category"`
	Cards          int      `json:"cards"`
	Placeholder    bool     `json:"placeholder"`
	Filter         string   `json:"filter"`
	VisibleSymbols []string `json:"visible_symbols"`
	Bought         string   `json:"bought,omitempty"`
	Acknowledgment string   `json:"acknowledgment,omitempty"`
}

// Probe opens category, applies filter and buys the first visible card.
func Probe(d *Driver, category, filter string) (Report, error) {
	r := Report{Category: category, Filter: filter}

	url, err := d.NewPage()
	if err != nil {
		return r, err
	}
	r.PageURL = url

	if err := d.OpenCategory(category); err != nil {
		return r, err
	}
	cards, err := d.Cards()
	if err != nil {
		return r, err
	}
	r.Cards = len(cards)
	if r.Placeholder, err = d.HasPlaceholder(); err != nil {
		return r, err
	}
	if r.Placeholder != (r.Cards == 0) {
		return r, fmt.Errorf("category %q rendered %d cards with placeholder=%v", category, r.Cards, r.Placeholder)
	}
	slog.Info("probe opened category", "category", category, "cards", r.Cards, "placeholder", r.Placeholder)

	if filter != "" {
		if err := d.Filter(filter); err != nil {
			return r, err
		}
		if cards, err = d.Cards(); err != nil {
			return r, err
		}
		if len(cards) != r.Cards {
			return r, fmt.Errorf("filter removed cards: %d before, %d after", r.Cards, len(cards))
		}
	}
	r.VisibleSymbols = VisibleSymbols(cards)
	slog.Info("probe filtered", "filter", filter, "visible", len(r.VisibleSymbols))

	if len(r.VisibleSymbols) == 0 {
		return r, d.Escape()
	}
	r.Bought = r.VisibleSymbols[0]
	if r.Acknowledgment, err = d.Buy(r.Bought); err != nil {
		return r, err
	}
	return r, nil
}
