// Package modal tracks overlay panels by identifier. Active modals form a
// stack; page scrolling is locked while the stack is non-empty.
package modal

import (
	"log/slog"

	"github.com/dgnsrekt/invest_desk/internal/types"
)

const (
	StockSelection = "stockSelectionModal"
	Deposit        = "depositModal"
	Withdrawal     = "withdrawalModal"
	KYC            = "kycModal"
)

// DefaultIDs lists the modals present on every page.
var DefaultIDs = []string{StockSelection, Deposit, Withdrawal, KYC}

// Controller is not safe for concurrent use; callers serialise events per page.
type Controller struct {
	known    map[string]bool
	stack    []string
	onClose  map[string][]func()
	onChange func(Transition)
}

// Transition describes a single open or close.
type Transition struct {
	ID           string   `json:"id"`
	Active       bool     `json:"active"`
	Stack        []string `json:"stack"`
	ScrollLocked bool     `json:"scroll_locked"`
}

// New registers the given modal ids. With no ids, DefaultIDs are used.
func New(ids ...string) *Controller {
	if len(ids) == 0 {
		ids = DefaultIDs
	}
	c := &Controller{
		known:   make(map[string]bool, len(ids)),
		onClose: make(map[string][]func()),
	}
	for _, id := range ids {
		c.known[id] = true
	}
	return c
}

// OnClose registers fn to run whenever modal id goes from active to inactive.
func (c *Controller) OnClose(id string, fn func()) {
	c.onClose[id] = append(c.onClose[id], fn)
}

// OnChange sets a single observer for every transition.
func (c *Controller) OnChange(fn func(Transition)) {
	c.onChange = fn
}

// Open marks id active and moves it to the top of the stack.
func (c *Controller) Open(id string) error {
	if !c.known[id] {
		slog.Debug("modal open ignored", "modal_id", id)
		return types.NotFound("modal %q", id)
	}
	c.remove(id)
	c.stack = append(c.stack, id)
	c.notify(id, true)
	return nil
}

// Close marks id inactive. Scrolling is restored only once no modal remains
// active. Closing an inactive modal is a no-op.
func (c *Controller) Close(id string) error {
	if !c.known[id] {
		slog.Debug("modal close ignored", "modal_id", id)
		return types.NotFound("modal %q", id)
	}
	if !c.remove(id) {
		return nil
	}
	c.notify(id, false)
	for _, fn := range c.onClose[id] {
		fn()
	}
	return nil
}

// CloseTopmostOnEscape closes the most recently opened active modal.
func (c *Controller) CloseTopmostOnEscape() (string, bool) {
	if len(c.stack) == 0 {
		return "", false
	}
	top := c.stack[len(c.stack)-1]
	if err := c.Close(top); err != nil {
		return "", false
	}
	return top, true
}

// IsActive reports whether id is currently open.
func (c *Controller) IsActive(id string) bool {
	for _, s := range c.stack {
		if s == id {
			return true
		}
	}
	return false
}

// Known reports whether id is a registered modal.
func (c *Controller) Known(id string) bool {
	return c.known[id]
}

// ScrollLocked reports whether any modal is active.
func (c *Controller) ScrollLocked() bool {
	return len(c.stack) > 0
}

// Stack returns the active modal ids, bottom first.
func (c *Controller) Stack() []string {
	return append([]string{}, c.stack...)
}

func (c *Controller) remove(id string) bool {
	for i, s := range c.stack {
		if s == id {
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Controller) notify(id string, active bool) {
	if c.onChange == nil {
		return
	}
	c.onChange(Transition{
		ID:           id,
		Active:       active,
		Stack:        c.Stack(),
		ScrollLocked: c.ScrollLocked(),
	})
}
