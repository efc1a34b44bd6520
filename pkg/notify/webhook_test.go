package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookSender(t *testing.T) {
	event := &TransferEvent{
		TransactionId:  "tx1",
		SenderId:       "alice",
		RecipientId:    "bob",
		RecipientEmail: "bob@example.com",
		Amount:         7,
		Message:        "thanks!",
	}

	t.Run("Success", func(t *testing.T) {
		var received TransferEvent
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sender := NewWebhookSender(server.URL)

		err := sender.Send(context.Background(), event)

		assert.NoError(t, err)
		assert.Equal(t, "tx1", received.TransactionId)
		assert.Equal(t, "bob@example.com", received.RecipientEmail)
	})

	t.Run("Gateway Error Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		sender := NewWebhookSender(server.URL)

		err := sender.Send(context.Background(), event)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("Unreachable Gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		sender := NewWebhookSender(server.URL)

		err := sender.Send(context.Background(), event)

		assert.Error(t, err)
	})
}
