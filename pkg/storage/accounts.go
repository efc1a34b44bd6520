package storage

import (
	"context"

	"github.com/perkwise/token-ledger/pkg/models"
)

// AccountStore defines the interface for reading and creating accounts.
// Balance mutations go through the LedgerWriter, never through this interface.
type AccountStore interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// GetAccountByEmail resolves an account by its unique email address.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// CreateAccount creates a new account with a zero or seeded balance.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// ListAccounts retrieves all accounts from the storage.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
