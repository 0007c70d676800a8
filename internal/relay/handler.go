package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// SSEHandler streams events as server-sent events. Clients may filter feeds
// via ?feeds=name1,name2.
func SSEHandler(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}
		filter := ParseFeeds(r.URL.Query().Get("feeds"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		id, ch := broker.Subscribe()
		defer broker.Unsubscribe(id)

		for {
			select {
			case <-r.Context().Done():
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if !filter.Accepts(evt.Feed) {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Feed, evt.Payload)
				flusher.Flush()
			}
		}
	}
}

// wsFrame is the JSON envelope written to WebSocket clients.
type wsFrame struct {
	Feed    string `json:"feed"`
	Payload string `json:"payload"`
}

// WSHandler upgrades to a WebSocket and writes each event as a text frame
// holding {"feed": ..., "payload": ...}. Client frames are read only to
// notice disconnects.
func WSHandler(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ParseFeeds(r.URL.Query().Get("feeds"))

		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			slog.Debug("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		id, ch := broker.Subscribe()
		defer broker.Unsubscribe(id)

		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := wsutil.ReadClientData(conn); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-gone:
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if !filter.Accepts(evt.Feed) {
					continue
				}
				data, err := encodeFrame(evt)
				if err != nil {
					slog.Error("websocket encode failed", "error", err)
					continue
				}
				if err := wsutil.WriteServerText(conn, data); err != nil {
					slog.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func encodeFrame(evt Event) ([]byte, error) {
	return json.Marshal(wsFrame{Feed: evt.Feed, Payload: evt.Payload})
}
