package docstore

import (
	"context"
	"errors"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// CardRepository implements usecase.CardRepository.
type CardRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(store *docstore.Store, retrier *Retrier) *CardRepository {
	return &CardRepository{store: store, retrier: retrier}
}

// Create creates a new card.
func (r *CardRepository) Create(ctx context.Context, workspaceID string, card *domain.Card) error {
	data, err := encode(card)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collCards, card.ID, data)
	})
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
	data, err := r.store.Get(ctx, workspaceID, collCards, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return decode[domain.Card](data)
}

// List returns the workspace's cards.
func (r *CardRepository) List(ctx context.Context, workspaceID string) ([]*domain.Card, error) {
	bodies, err := r.store.List(ctx, workspaceID, collCards, 0)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Card](bodies)
}
