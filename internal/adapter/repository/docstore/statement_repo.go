package docstore

import (
	"context"
	"errors"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// StatementRepository implements usecase.StatementRepository.
type StatementRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(store *docstore.Store, retrier *Retrier) *StatementRepository {
	return &StatementRepository{store: store, retrier: retrier}
}

// Create creates a new statement.
func (r *StatementRepository) Create(ctx context.Context, workspaceID string, statement *domain.CardStatement) error {
	data, err := encode(statement)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collStatements, statement.ID, data)
	})
}

// GetByID retrieves a statement by ID.
func (r *StatementRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.CardStatement, error) {
	data, err := r.store.Get(ctx, workspaceID, collStatements, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, err
	}
	return decode[domain.CardStatement](data)
}

// Update replaces a statement document.
func (r *StatementRepository) Update(ctx context.Context, workspaceID string, statement *domain.CardStatement) error {
	data, err := encode(statement)
	if err != nil {
		return err
	}
	err = r.retrier.Retry(ctx, func() error {
		return r.store.Update(ctx, workspaceID, collStatements, statement.ID, data)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrStatementNotFound
	}
	return err
}

// Delete removes a statement.
func (r *StatementRepository) Delete(ctx context.Context, workspaceID, id string) error {
	err := r.retrier.Retry(ctx, func() error {
		return r.store.Delete(ctx, workspaceID, collStatements, id)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrStatementNotFound
	}
	return err
}

// FindByKey returns every statement stored for the cycle, duplicates included.
func (r *StatementRepository) FindByKey(ctx context.Context, workspaceID, cardID string, key domain.StatementKey) ([]*domain.CardStatement, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collStatements,
		filter(map[string]any{"cardId": cardID, "month": key.Month, "year": key.Year}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.CardStatement](bodies)
}

// ListByCard returns every statement of a card.
func (r *StatementRepository) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collStatements, filter(map[string]any{"cardId": cardID}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.CardStatement](bodies)
}
