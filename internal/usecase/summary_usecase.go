package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mfreita/contas/internal/domain"
)

// SummaryUseCase computes card limit summaries, with a short-lived cache in
// front of the aggregation.
type SummaryUseCase struct {
	cardRepo      CardRepository
	txRepo        TransactionRepository
	statementRepo StatementRepository
	cache         Cache
	clock         Clock
	logger        zerolog.Logger
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil.
func NewSummaryUseCase(
	cardRepo CardRepository,
	txRepo TransactionRepository,
	statementRepo StatementRepository,
	cache Cache,
	clock Clock,
	logger zerolog.Logger,
) *SummaryUseCase {
	return &SummaryUseCase{
		cardRepo:      cardRepo,
		txRepo:        txRepo,
		statementRepo: statementRepo,
		cache:         cache,
		clock:         clock,
		logger:        logger,
	}
}

func summaryCacheKey(workspaceID, cardID string) string {
	return fmt.Sprintf("summary:%s:%s", workspaceID, cardID)
}

// CardSummary aggregates a card's transactions and statements into its limit
// summary.
func (uc *SummaryUseCase) CardSummary(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error) {
	if cardID == "" {
		return nil, domain.ErrMissingCard
	}

	key := summaryCacheKey(workspaceID, cardID)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
			var summary domain.CardLimitSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	card, err := uc.cardRepo.GetByID(ctx, workspaceID, cardID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.txRepo.ListByCard(ctx, workspaceID, cardID)
	if err != nil {
		return nil, fmt.Errorf("list card transactions: %w", err)
	}

	statements, err := uc.statementRepo.ListByCard(ctx, workspaceID, cardID)
	if err != nil {
		return nil, fmt.Errorf("list card statements: %w", err)
	}

	summary := domain.SummarizeCard(card, transactions, statements, uc.clock.Now())

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := uc.cache.Set(ctx, key, string(data), SummaryCacheTTL); err != nil {
				uc.logger.Warn().Err(err).Str("card_id", cardID).Msg("summary cache write failed")
			}
		}
	}

	return &summary, nil
}
