package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookSender delivers transfer events to the mail-gateway webhook. Used by
// the notifier lambda, never from the request path.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

// NewWebhookSender creates a WebhookSender with a bounded request timeout so
// a slow gateway cannot stall the dispatcher.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Send posts the event as JSON and treats any non-2xx response as a failure,
// letting the queue redeliver the message.
func (s *WebhookSender) Send(ctx context.Context, event *TransferEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver transfer event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail gateway returned status %d", resp.StatusCode)
	}

	return nil
}
