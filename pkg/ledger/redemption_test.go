package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/perkwise/token-ledger/pkg/ledger"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRedeem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		store.addReward("coffee", 30, 5, true)
		engine := ledger.NewRedemptionEngine(store, 0)

		result, err := engine.Redeem(context.Background(), "alice", "coffee")

		require.NoError(t, err)
		assert.Equal(t, int64(70), result.NewBalance)
		assert.Len(t, result.RedemptionCode, 12)
		assert.Equal(t, int64(70), store.balance("alice"))
		assert.Equal(t, int64(4), store.rewards["coffee"].Stock)

		txs := store.transactions()
		require.Len(t, txs, 1)
		assert.Equal(t, models.REDEEM, txs[0].Type)
		assert.Equal(t, int64(-30), txs[0].Amount)
		require.NotNil(t, txs[0].Redemption)
		assert.Equal(t, "coffee", txs[0].Redemption.RewardId)
		assert.Equal(t, result.RedemptionCode, txs[0].Redemption.RedemptionCode)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 10)
		store.addReward("coffee", 30, 5, true)
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "alice", "coffee")
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.Equal(t, int64(10), store.balance("alice"))
		assert.Equal(t, int64(5), store.rewards["coffee"].Stock)
	})

	t.Run("Inactive Reward", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		store.addReward("retired", 30, 5, false)
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "alice", "retired")
		assert.ErrorIs(t, err, storage.ErrRewardUnavailable)
	})

	t.Run("Exhausted Stock", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		store.addReward("sold-out", 30, 0, true)
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "alice", "sold-out")
		assert.ErrorIs(t, err, storage.ErrRewardUnavailable)
		assert.Equal(t, int64(100), store.balance("alice"))
	})

	t.Run("Reward Not Found", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "alice", "nope")
		assert.ErrorIs(t, err, storage.ErrRewardNotFound)
	})

	t.Run("Account Not Found", func(t *testing.T) {
		store := newFakeStore()
		store.addReward("coffee", 30, 5, true)
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "ghost", "coffee")
		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("Unlimited Stock Never Decrements", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 1000)
		store.addReward("sticker", 10, models.UnlimitedStock, true)
		engine := ledger.NewRedemptionEngine(store, 0)

		for i := 0; i < 5; i++ {
			_, err := engine.Redeem(context.Background(), "alice", "sticker")
			require.NoError(t, err)
		}
		assert.Equal(t, models.UnlimitedStock, store.rewards["sticker"].Stock)
		assert.Equal(t, int64(950), store.balance("alice"))
	})

	t.Run("Retries Lost Races", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		store.addReward("coffee", 30, 5, true)
		store.conflicts = 2
		engine := ledger.NewRedemptionEngine(store, 0)

		result, err := engine.Redeem(context.Background(), "alice", "coffee")
		require.NoError(t, err)
		assert.Equal(t, int64(70), result.NewBalance)
	})

	t.Run("Surfaces Conflict After Bounded Retries", func(t *testing.T) {
		store := newFakeStore()
		store.addAccount("alice", "alice@example.com", 100)
		store.addReward("coffee", 30, 5, true)
		store.conflicts = 1000
		engine := ledger.NewRedemptionEngine(store, 0)

		_, err := engine.Redeem(context.Background(), "alice", "coffee")
		assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)
	})
}

func TestRedeemConcurrency(t *testing.T) {
	// Two affordable redemptions racing for a single unit of stock: exactly
	// one wins and stock ends at zero, never negative.
	store := newFakeStore()
	store.addAccount("alice", "alice@example.com", 100)
	store.addAccount("bob", "bob@example.com", 100)
	store.addReward("last-one", 30, 1, true)
	engine := ledger.NewRedemptionEngine(store, 0)

	var mu sync.Mutex
	var failures []error

	g := new(errgroup.Group)
	for _, userID := range []string{"alice", "bob"} {
		g.Go(func() error {
			_, err := engine.Redeem(context.Background(), userID, "last-one")
			if err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], storage.ErrRewardUnavailable)
	assert.Equal(t, int64(0), store.rewards["last-one"].Stock)
	assert.Len(t, store.transactions(), 1)
}
