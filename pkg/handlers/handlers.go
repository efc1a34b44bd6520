package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/perkwise/token-ledger/pkg/api"
	"github.com/perkwise/token-ledger/pkg/ledger"
	"github.com/perkwise/token-ledger/pkg/mapping"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// storeTimeout bounds store calls made directly from a handler. The engines
// carry their own per-operation timeouts; an inbound request context has no
// deadline of its own, so a hung store call would otherwise block forever.
const storeTimeout = 5 * time.Second

func boundedCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}

// TransferService is the slice of the ledger engine the handlers depend on.
type TransferService interface {
	Transfer(ctx context.Context, senderID, recipientEmail string, amount int64, message string) (*ledger.TransferResult, error)
	Purchase(ctx context.Context, userID string, amount int64) (*ledger.TransferResult, error)
	Balance(ctx context.Context, userID string) (int64, error)
}

// RedemptionService is the slice of the redemption engine the handlers depend on.
type RedemptionService interface {
	Redeem(ctx context.Context, userID, rewardID string) (*ledger.RedemptionResult, error)
}

// ApiHandler holds the HTTP surface's dependencies. Routing, parsing and
// status-code mapping live here; all correctness logic lives in the engines.
type ApiHandler struct {
	Transfers   TransferService
	Redemptions RedemptionService
	Store       storage.Storage
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(transfers TransferService, redemptions RedemptionService, store storage.Storage) *ApiHandler {
	return &ApiHandler{
		Transfers:   transfers,
		Redemptions: redemptions,
		Store:       store,
	}
}

// Routes mounts all API handlers on the router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/accounts", h.CreateAccount)
	r.Get("/users/{userId}/balance", h.GetBalance)
	r.Get("/users/{userId}/transactions", h.ListUserTransactions)
	r.Post("/transfers", h.TransferTokens)
	r.Post("/purchases", h.PurchaseTokens)
	r.Get("/rewards", h.ListRewards)
	r.Post("/rewards", h.CreateReward)
	r.Post("/rewards/{rewardId}/redemptions", h.RedeemReward)
	r.Get("/transactions/recent", h.ListRecentTransactions)
}

// TransferTokens handles the logic for transferring tokens between accounts.
func (h *ApiHandler) TransferTokens(w http.ResponseWriter, r *http.Request) {
	var newTransfer api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&newTransfer); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Transfers.Transfer(r.Context(), newTransfer.SenderId, string(newTransfer.RecipientEmail), newTransfer.Amount, newTransfer.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &api.TransferResponse{
		NewBalance:  result.NewSenderBalance,
		Transaction: mapping.ToApiTransaction(result.Transaction),
	})
}

// PurchaseTokens handles the logic for a simulated token purchase.
func (h *ApiHandler) PurchaseTokens(w http.ResponseWriter, r *http.Request) {
	var newPurchase api.NewPurchase
	if err := json.NewDecoder(r.Body).Decode(&newPurchase); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Transfers.Purchase(r.Context(), newPurchase.UserId, newPurchase.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &api.TransferResponse{
		NewBalance:  result.NewSenderBalance,
		Transaction: mapping.ToApiTransaction(result.Transaction),
	})
}

// RedeemReward handles the logic for redeeming a catalog reward.
func (h *ApiHandler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	rewardID := chi.URLParam(r, "rewardId")

	var newRedemption api.NewRedemption
	if err := json.NewDecoder(r.Body).Decode(&newRedemption); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Redemptions.Redeem(r.Context(), newRedemption.UserId, rewardID)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &api.RedemptionResponse{
		NewBalance:     result.NewBalance,
		RedemptionCode: result.RedemptionCode,
		Transaction:    mapping.ToApiTransaction(result.Transaction),
	})
}

// GetBalance handles the logic for retrieving a user's balance.
func (h *ApiHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	balance, err := h.Transfers.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &api.BalanceResponse{UserId: userID, Balance: balance})
}

// CreateAccount handles the logic for creating a new account.
func (h *ApiHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newAccount.Email == "" {
		http.Error(w, "invalid email: must not be empty", http.StatusBadRequest)
		return
	}

	ctx, cancel := boundedCtx(r)
	defer cancel()

	created, err := h.Store.CreateAccount(ctx, mapping.ToDomainNewAccount(&newAccount))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiAccount(created))
}

// CreateReward handles the logic for adding a reward to the catalog.
func (h *ApiHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var newReward api.NewReward
	if err := json.NewDecoder(r.Body).Decode(&newReward); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newReward.TokenCost <= 0 {
		http.Error(w, "invalid token_cost: must be a positive integer", http.StatusBadRequest)
		return
	}
	if newReward.Stock < -1 {
		http.Error(w, "invalid stock: must be -1 (unlimited) or non-negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := boundedCtx(r)
	defer cancel()

	created, err := h.Store.CreateReward(ctx, mapping.ToDomainNewReward(&newReward))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiReward(created))
}

// ListRewards handles the logic for listing the active reward catalog.
func (h *ApiHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r)
	defer cancel()

	rewards, err := h.Store.ListRewards(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	apiRewards := make([]*api.Reward, len(rewards))
	for i := range rewards {
		apiRewards[i] = mapping.ToApiReward(&rewards[i])
	}
	respondJSON(w, http.StatusOK, apiRewards)
}

// respondJSON writes v with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// writeError maps core error tags to transport status codes.
func writeError(w http.ResponseWriter, err error) {
	var ve *storage.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrAccountNotFound), errors.Is(err, storage.ErrRewardNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		http.Error(w, "Already exists", http.StatusConflict)
	case errors.Is(err, storage.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrSelfTransfer):
		http.Error(w, "Cannot transfer tokens to yourself", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrRewardUnavailable):
		http.Error(w, "Reward unavailable", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrConcurrencyConflict):
		http.Error(w, "Concurrent update conflict, please retry", http.StatusConflict)
	case errors.Is(err, storage.ErrStoreUnavailable):
		http.Error(w, "Storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("Internal error: %v", err), http.StatusInternalServerError)
	}
}
