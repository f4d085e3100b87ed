package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *docstore.Store, retrier *Retrier) *AccountRepository {
	return &AccountRepository{store: store, retrier: retrier}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, workspaceID string, account *domain.Account) error {
	data, err := encode(account)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collAccounts, account.ID, data)
	})
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	data, err := r.store.Get(ctx, workspaceID, collAccounts, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return decode[domain.Account](data)
}

// Update replaces an account document.
func (r *AccountRepository) Update(ctx context.Context, workspaceID string, account *domain.Account) error {
	data, err := encode(account)
	if err != nil {
		return err
	}
	err = r.retrier.Retry(ctx, func() error {
		return r.store.Update(ctx, workspaceID, collAccounts, account.ID, data)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

// AdjustBalance applies a signed delta to the stored balance. The
// read-modify-write runs under the retrier so concurrent adjustments settle
// instead of failing.
func (r *AccountRepository) AdjustBalance(ctx context.Context, workspaceID, id string, delta decimal.Decimal, at time.Time) error {
	err := r.retrier.Retry(ctx, func() error {
		account, err := r.GetByID(ctx, workspaceID, id)
		if err != nil {
			return err
		}

		account.Balance = account.ApplyDelta(delta)
		account.UpdatedAt = at

		data, err := encode(account)
		if err != nil {
			return err
		}
		return r.store.Update(ctx, workspaceID, collAccounts, id, data)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

// List returns the workspace's accounts, up to limit.
func (r *AccountRepository) List(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error) {
	bodies, err := r.store.List(ctx, workspaceID, collAccounts, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Account](bodies)
}
