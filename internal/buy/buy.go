// Package buy turns a selected (symbol, name) pair into a buy intent and
// hands it to a confirmation collaborator.
package buy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/google/uuid"
)

// Lookup resolves trade context for a symbol/name pair.
type Lookup interface {
	Lookup(preferred, symbol, name string) (catalog.Instrument, string, bool)
}

// Closer is the panel that must be closed before the hand-off.
type Closer interface {
	Close()
}

// Confirmer is the external buy confirmation step.
type Confirmer interface {
	Confirm(ctx context.Context, intent Intent) error
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, intent Intent) error

func (f ConfirmerFunc) Confirm(ctx context.Context, intent Intent) error { return f(ctx, intent) }

// Intent is the hand-off record for a buy selection.
type Intent struct {
	ID         string             `json:"id"`
	Symbol     string             `json:"symbol"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Instrument catalog.Instrument `json:"instrument"`
	At         time.Time          `json:"at"`
}

// Acknowledgment is the synchronous user-facing result of a dispatch.
type Acknowledgment struct {
	Intent  Intent `json:"intent"`
	Message string `json:"message"`
}

// Dispatcher closes the browser panel, re-resolves the instrument through the
// catalog and forwards the intent.
type Dispatcher struct {
	lookup    Lookup
	confirmer Confirmer
	now       func() time.Time
}

// NewDispatcher returns a dispatcher. A nil confirmer acknowledges only.
func NewDispatcher(lookup Lookup, confirmer Confirmer) *Dispatcher {
	if confirmer == nil {
		confirmer = AckConfirmer{}
	}
	return &Dispatcher{lookup: lookup, confirmer: confirmer, now: time.Now}
}

// Dispatch closes closer, then resolves and confirms the intent. category
// is a lookup hint; the catalog is authoritative.
func (d *Dispatcher) Dispatch(ctx context.Context, closer Closer, category, symbol, name string) (Acknowledgment, error) {
	if closer != nil {
		closer.Close()
	}

	symbol = strings.TrimSpace(symbol)
	name = strings.TrimSpace(name)
	if symbol == "" {
		return Acknowledgment{}, types.Validation("symbol is required")
	}

	inst, resolved, ok := d.lookup.Lookup(category, symbol, name)
	if !ok {
		slog.Warn("buy intent for unknown instrument", "symbol", symbol, "name", name, "category", category)
		return Acknowledgment{}, types.NotFound("instrument %s (%s)", name, symbol)
	}

	intent := Intent{
		ID:         uuid.NewString(),
		Symbol:     inst.Symbol,
		Name:       inst.Name,
		Category:   resolved,
		Instrument: inst,
		At:         d.now().UTC(),
	}
	if err := d.confirmer.Confirm(ctx, intent); err != nil {
		var coded *types.CodedError
		if errors.As(err, &coded) {
			return Acknowledgment{}, err
		}
		return Acknowledgment{}, types.NewError(types.CodeConfirmFailed, "buy confirmation failed", err)
	}

	return Acknowledgment{
		Intent:  intent,
		Message: fmt.Sprintf("Buying %s (%s)", intent.Name, intent.Symbol),
	}, nil
}

// AckConfirmer acknowledges synchronously without any further step.
type AckConfirmer struct{}

func (AckConfirmer) Confirm(_ context.Context, intent Intent) error {
	slog.Info("buy intent acknowledged", "intent_id", intent.ID, "symbol", intent.Symbol, "category", intent.Category)
	return nil
}

// MultiConfirmer runs every confirmer in order and joins their errors.
type MultiConfirmer []Confirmer

func (m MultiConfirmer) Confirm(ctx context.Context, intent Intent) error {
	var errs []error
	for _, c := range m {
		if c == nil {
			continue
		}
		if err := c.Confirm(ctx, intent); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
