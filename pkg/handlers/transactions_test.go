package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perkwise/token-ledger/pkg/api"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
	"github.com/perkwise/token-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListUserTransactionsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		expected := []models.Transaction{
			{Id: "tx2", SenderId: "alice", RecipientId: "bob", Amount: 5, Type: models.SEND, Status: models.COMPLETED, CreatedAt: time.Now()},
			{Id: "tx1", SenderId: "carol", RecipientId: "alice", Amount: 3, Type: models.SEND, Status: models.COMPLETED, CreatedAt: time.Now().Add(-time.Minute)},
		}
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).Return(expected, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var transactions []api.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &transactions))
		assert.Len(t, transactions, 2)
		assert.Equal(t, "tx2", transactions[0].Id)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Inbound Sends Surface As Receive", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		rows := []models.Transaction{
			{Id: "tx-out", SenderId: "alice", RecipientId: "bob", Amount: 5, Type: models.SEND, Status: models.COMPLETED, CreatedAt: time.Now()},
			{Id: "tx-in", SenderId: "carol", RecipientId: "alice", Amount: 3, Type: models.SEND, Status: models.COMPLETED, CreatedAt: time.Now().Add(-time.Minute)},
			{Id: "tx-buy", SenderId: "alice", RecipientId: "alice", Amount: 50, Type: models.PURCHASE, Status: models.COMPLETED, CreatedAt: time.Now().Add(-2 * time.Minute)},
		}
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).Return(rows, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var transactions []api.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &transactions))
		assert.Equal(t, api.TransactionType(models.SEND), transactions[0].Type)
		assert.Equal(t, api.TransactionType(models.RECEIVE), transactions[1].Type)
		assert.Equal(t, api.TransactionType(models.PURCHASE), transactions[2].Type)
		mockStorage.AssertExpectations(t)
	})

	t.Run("With Pagination", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 5, 10).Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions?limit=5&offset=10", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Oversized Pagination Is Clamped", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 100, 10000).Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions?limit=100000000000&offset=99999999999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Garbage Pagination Falls Back To Defaults", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions?limit=abc&offset=-3", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Runs Under Deadline", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		var hasDeadline bool
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).
			Run(func(args mock.Arguments) {
				_, hasDeadline = args.Get(0).(context.Context).Deadline()
			}).
			Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasDeadline)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Store Timeout Maps To 503", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).Return(nil, storage.ErrStoreUnavailable).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListUserTransactions", mock.Anything, "alice", 20, 0).Return(nil, assert.AnError).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/users/alice/transactions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestListRecentTransactionsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		expected := []models.Transaction{
			{Id: "tx1", SenderId: "alice", RecipientId: "bob", Amount: 5, Type: models.SEND, Status: models.COMPLETED, CreatedAt: time.Now()},
		}
		mockStorage.On("ListTransactionsByStatus", mock.Anything, models.COMPLETED, int32(20)).Return(expected, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/transactions/recent", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var transactions []api.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &transactions))
		assert.Len(t, transactions, 1)
		mockStorage.AssertExpectations(t)
	})

	t.Run("With Limit", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListTransactionsByStatus", mock.Anything, models.COMPLETED, int32(5)).Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/transactions/recent?limit=5", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Runs Under Deadline", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		var hasDeadline bool
		mockStorage.On("ListTransactionsByStatus", mock.Anything, models.COMPLETED, int32(20)).
			Run(func(args mock.Arguments) {
				_, hasDeadline = args.Get(0).(context.Context).Deadline()
			}).
			Return([]models.Transaction{}, nil).Once()

		router := newRouter(nil, nil, mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/transactions/recent", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasDeadline)
		mockStorage.AssertExpectations(t)
	})
}
