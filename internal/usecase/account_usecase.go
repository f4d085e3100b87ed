package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// AccountUseCase handles account CRUD.
type AccountUseCase struct {
	accountRepo AccountRepository
	clock       Clock
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, clock Clock, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		clock:       clock,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	WorkspaceID    string
	Name           string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account. The initial balance doubles as the
// starting balance anchor, so new accounts reconcile cleanly from day one.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := uc.clock.Now()
	starting := domain.RoundCents(input.InitialBalance)

	account := &domain.Account{
		ID:              uc.idGen.Generate(),
		WorkspaceID:     input.WorkspaceID,
		Name:            input.Name,
		Balance:         starting,
		StartingBalance: &starting,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.accountRepo.Create(ctx, input.WorkspaceID, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, workspaceID, id)
}

// ListAccounts lists a workspace's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.accountRepo.List(ctx, workspaceID, limit)
}
