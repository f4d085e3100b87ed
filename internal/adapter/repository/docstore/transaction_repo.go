package docstore

import (
	"context"
	"errors"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *docstore.Store, retrier *Retrier) *TransactionRepository {
	return &TransactionRepository{store: store, retrier: retrier}
}

// Create creates a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, workspaceID string, transaction *domain.Transaction) error {
	data, err := encode(transaction)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collTransactions, transaction.ID, data)
	})
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error) {
	data, err := r.store.Get(ctx, workspaceID, collTransactions, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return decode[domain.Transaction](data)
}

// Update replaces a transaction document.
func (r *TransactionRepository) Update(ctx context.Context, workspaceID string, transaction *domain.Transaction) error {
	data, err := encode(transaction)
	if err != nil {
		return err
	}
	err = r.retrier.Retry(ctx, func() error {
		return r.store.Update(ctx, workspaceID, collTransactions, transaction.ID, data)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrTransactionNotFound
	}
	return err
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, workspaceID, id string) error {
	err := r.retrier.Retry(ctx, func() error {
		return r.store.Delete(ctx, workspaceID, collTransactions, id)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrTransactionNotFound
	}
	return err
}

// ListByCard returns every transaction of a card.
func (r *TransactionRepository) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.Transaction, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collTransactions, filter(map[string]any{"cardId": cardID}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Transaction](bodies)
}

// ListPaidByAccount returns paid transactions touching the account, whether as
// home account or as the account that settled them. Containment filters cannot
// express the disjunction, so two queries are merged and deduplicated.
func (r *TransactionRepository) ListPaidByAccount(ctx context.Context, workspaceID, accountID string) ([]*domain.Transaction, error) {
	home, err := r.store.Query(ctx, workspaceID, collTransactions,
		filter(map[string]any{"status": domain.TransactionPaid, "accountId": accountID}))
	if err != nil {
		return nil, err
	}
	settled, err := r.store.Query(ctx, workspaceID, collTransactions,
		filter(map[string]any{"status": domain.TransactionPaid, "paidAccountId": accountID}))
	if err != nil {
		return nil, err
	}

	transactions, err := decodeAll[domain.Transaction](append(home, settled...))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(transactions))
	result := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		result = append(result, t)
	}
	return result, nil
}
