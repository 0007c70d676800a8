package buy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/types"
)

// WebhookConfirmer posts each intent as JSON to an external buy confirmation
// endpoint.
type WebhookConfirmer struct {
	Client   *http.Client
	Endpoint string
	Timeout  time.Duration
}

type webhookPayload struct {
	ID       string    `json:"id"`
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    string    `json:"price"`
	At       time.Time `json:"at"`
}

func (w *WebhookConfirmer) Confirm(ctx context.Context, intent Intent) error {
	if w.Endpoint == "" {
		return types.Validation("confirm webhook endpoint is required")
	}
	c := w.Client
	if c == nil {
		c = http.DefaultClient
	}
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(webhookPayload{
		ID:       intent.ID,
		Symbol:   intent.Symbol,
		Name:     intent.Name,
		Category: intent.Category,
		Price:    intent.Instrument.Price,
		At:       intent.At,
	})
	if err != nil {
		return fmt.Errorf("marshal buy intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.Endpoint, bytes.NewReader(body))
	if err != nil {
		return types.NewError(types.CodeConfirmFailed, "build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return types.NewError(types.CodeConfirmFailed, "webhook post failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.NewError(types.CodeConfirmFailed, fmt.Sprintf("webhook status=%d", resp.StatusCode), nil)
	}
	return nil
}
