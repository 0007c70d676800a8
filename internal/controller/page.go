package controller

import (
	"sync"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/buy"
	"github.com/dgnsrekt/invest_desk/internal/modal"
	"github.com/dgnsrekt/invest_desk/internal/widget"
)

// page is one client page. All events for a page run to completion under mu.
type page struct {
	id      string
	mu      sync.Mutex
	modals  *modal.Controller
	browser *widget.Browser
	lastAck *buy.Acknowledgment
	lastErr string
	created time.Time
	touched time.Time
}

func (p *page) state() PageState {
	st := PageState{
		ID:           p.id,
		Browser:      p.browser.View(),
		ModalStack:   p.modals.Stack(),
		ScrollLocked: p.modals.ScrollLocked(),
		LastError:    p.lastErr,
		CreatedAt:    p.created,
		UpdatedAt:    p.touched,
	}
	if p.lastAck != nil {
		ack := *p.lastAck
		st.LastAck = &ack
	}
	return st
}

// idleSince reads touched without blocking a page that is mid-event; a busy
// page is never idle.
func (p *page) idleSince() time.Time {
	if !p.mu.TryLock() {
		return time.Now()
	}
	defer p.mu.Unlock()
	return p.touched
}
