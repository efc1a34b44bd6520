package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/perkwise/token-ledger/pkg/api"
	"github.com/perkwise/token-ledger/pkg/mapping"
	"github.com/perkwise/token-ledger/pkg/models"
)

const (
	// maxPageLimit caps client-supplied page sizes. maxPageOffset keeps
	// limit+offset far away from the int32 Query limit.
	maxPageLimit  = 100
	maxPageOffset = 10000
)

// ListUserTransactions handles the logic for a user's paginated history.
// A transfer is stored once, from the sender's perspective; when the viewing
// user is the recipient of a SEND row it is presented as a RECEIVE entry.
func (h *ApiHandler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	limit := queryInt(r, "limit", 20, maxPageLimit)
	offset := queryInt(r, "offset", 0, maxPageOffset)

	ctx, cancel := boundedCtx(r)
	defer cancel()

	transactions, err := h.Store.ListUserTransactions(ctx, userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	apiTxs := make([]*api.Transaction, len(transactions))
	for i := range transactions {
		apiTxs[i] = userViewTransaction(userID, &transactions[i])
	}
	respondJSON(w, http.StatusOK, apiTxs)
}

// ListRecentTransactions handles the logic for the global recent feed.
func (h *ApiHandler) ListRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20, maxPageLimit)

	ctx, cancel := boundedCtx(r)
	defer cancel()

	transactions, err := h.Store.ListTransactionsByStatus(ctx, models.COMPLETED, int32(limit))
	if err != nil {
		writeError(w, err)
		return
	}

	apiTxs := make([]*api.Transaction, len(transactions))
	for i := range transactions {
		apiTxs[i] = mapping.ToApiTransaction(&transactions[i])
	}
	respondJSON(w, http.StatusOK, apiTxs)
}

// userViewTransaction maps a stored row into the viewing user's perspective:
// a SEND row whose recipient is the viewer surfaces as RECEIVE. The stored row
// is untouched, RECEIVE is a read-side type only.
func userViewTransaction(userID string, tx *models.Transaction) *api.Transaction {
	apiTx := mapping.ToApiTransaction(tx)
	if tx.Type == models.SEND && tx.RecipientId == userID && tx.SenderId != userID {
		apiTx.Type = api.TransactionType(models.RECEIVE)
	}
	return apiTx
}

// queryInt parses an integer query parameter, falling back to def and
// clamping at max.
func queryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
