//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestModalStackEscape(t *testing.T) {
	id := newPage(t)
	openCategory(t, id, "US Stocks")

	resp := env.POST(t, pagePath(id, "modals/depositModal/open"), nil)
	requireStatus(t, resp, http.StatusOK)
	st := decodeJSON[pageState](t, resp)
	requireField(t, len(st.ModalStack), 2, "len(modal_stack)")

	resp = env.POST(t, pagePath(id, "keys/escape"), nil)
	requireStatus(t, resp, http.StatusOK)
	st = decodeJSON[pageState](t, resp)
	requireField(t, st.ScrollLocked, true, "scroll_locked")
	requireField(t, st.Browser.State, "open", "state")

	resp = env.POST(t, pagePath(id, "keys/escape"), nil)
	requireStatus(t, resp, http.StatusOK)
	st = decodeJSON[pageState](t, resp)
	requireField(t, st.ScrollLocked, false, "scroll_locked")
	requireField(t, st.Browser.State, "closed", "state")
}

func TestUnknownModalNotFound(t *testing.T) {
	id := newPage(t)
	resp := env.POST(t, pagePath(id, "modals/bogusModal/open"), nil)
	requireStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestUnknownPageNotFound(t *testing.T) {
	resp := env.GET(t, pagePath("00000000-0000-0000-0000-000000000000", ""))
	requireStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}
