package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// CardUseCase handles card CRUD.
type CardUseCase struct {
	cardRepo CardRepository
	clock    Clock
	idGen    IDGenerator
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(cardRepo CardRepository, clock Clock, idGen IDGenerator) *CardUseCase {
	return &CardUseCase{
		cardRepo: cardRepo,
		clock:    clock,
		idGen:    idGen,
	}
}

// CreateCardInput represents input for creating a card.
type CreateCardInput struct {
	WorkspaceID string
	Name        string
	Limit       decimal.Decimal
	ClosingDay  int
	DueDay      int
}

// CreateCard creates a new card.
func (uc *CardUseCase) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Card, error) {
	if input.Limit.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()
	card := &domain.Card{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Limit:       domain.RoundCents(input.Limit),
		ClosingDay:  input.ClosingDay,
		DueDay:      input.DueDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.cardRepo.Create(ctx, input.WorkspaceID, card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetCard retrieves a card by ID.
func (uc *CardUseCase) GetCard(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
	return uc.cardRepo.GetByID(ctx, workspaceID, id)
}

// ListCards lists a workspace's cards.
func (uc *CardUseCase) ListCards(ctx context.Context, workspaceID string) ([]*domain.Card, error) {
	return uc.cardRepo.List(ctx, workspaceID)
}
