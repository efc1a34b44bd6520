package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/perkwise/token-ledger/pkg/api"
	"github.com/perkwise/token-ledger/pkg/mapping"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// storeTimeout bounds the aggregation query; it pages the whole SEND index,
// so an unbounded context would let a hung page block the request forever.
const storeTimeout = 5 * time.Second

const maxLimit = 100

// LeaderboardHandler holds the dependencies for leaderboard handlers.
type LeaderboardHandler struct {
	Store storage.TransactionReader
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(store storage.TransactionReader) *LeaderboardHandler {
	return &LeaderboardHandler{Store: store}
}

// GetLeaderboard aggregates SEND totals by sender or recipient. The `type`
// query parameter selects the side (default "sent").
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind := storage.LeaderboardSent
	switch r.URL.Query().Get("type") {
	case "", string(storage.LeaderboardSent):
	case string(storage.LeaderboardReceived):
		kind = storage.LeaderboardReceived
	default:
		http.Error(w, "invalid type: must be \"sent\" or \"received\"", http.StatusBadRequest)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entries, err := h.Store.AggregateLeaderboard(ctx, kind, limit)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			http.Error(w, "Storage temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to aggregate leaderboard: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LeaderboardEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiLeaderboardEntry(&entries[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
