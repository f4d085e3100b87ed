package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// ReconcileUseCase audits every account's stored balance against the balance
// implied by its paid-transaction history, optionally repairing drift.
type ReconcileUseCase struct {
	workspaceRepo WorkspaceRepository
	accountRepo   AccountRepository
	txRepo        TransactionRepository
	audit         AuditSink
	clock         Clock
	logger        zerolog.Logger
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(
	workspaceRepo WorkspaceRepository,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	audit AuditSink,
	clock Clock,
	logger zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		workspaceRepo: workspaceRepo,
		accountRepo:   accountRepo,
		txRepo:        txRepo,
		audit:         audit,
		clock:         clock,
		logger:        logger,
	}
}

// ReconcileInput selects what to reconcile. Apply defaults to false: a dry run
// computes and reports everything without a single write.
type ReconcileInput struct {
	// WorkspaceIDs limits the run; empty means every known workspace.
	WorkspaceIDs []string
	Apply        bool
	// Limit caps accounts per workspace; 0 uses the default.
	Limit    int
	ActorUID string
}

// AccountResult is the outcome for one account.
type AccountResult struct {
	AccountID       string          `json:"accountId"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	Movement        decimal.Decimal `json:"movement"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	Drift           decimal.Decimal `json:"drift"`
	HasDrift        bool            `json:"hasDrift"`
	NeedsBackfill   bool            `json:"needsBackfill"`
	Updated         bool            `json:"updated"`
	Error           string          `json:"error,omitempty"`
}

// WorkspaceReport aggregates one workspace's results.
type WorkspaceReport struct {
	WorkspaceID string          `json:"workspaceId"`
	Accounts    []AccountResult `json:"accounts"`
	Evaluated   int             `json:"evaluated"`
	Drifted     int             `json:"drifted"`
	Updated     int             `json:"updated"`
	Backfilled  int             `json:"backfilled"`
	Failed      int             `json:"failed"`
	TotalDrift  decimal.Decimal `json:"totalDrift"`
}

// ReconcileReport is the full run report.
type ReconcileReport struct {
	Workspaces []WorkspaceReport `json:"workspaces"`
	Evaluated  int               `json:"evaluated"`
	Drifted    int               `json:"drifted"`
	Updated    int               `json:"updated"`
	Backfilled int               `json:"backfilled"`
	Failed     int               `json:"failed"`
	TotalDrift decimal.Decimal   `json:"totalDrift"`
	DryRun     bool              `json:"dryRun"`
	StartedAt  time.Time         `json:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt"`
}

// Reconcile runs the batch job. One account's failure never aborts its
// siblings; per-workspace writes are issued concurrently and awaited as a unit
// before the workspace summary is reported.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileReport, error) {
	workspaceIDs := input.WorkspaceIDs
	if len(workspaceIDs) == 0 {
		ids, err := uc.workspaceRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list workspaces: %w", err)
		}
		workspaceIDs = ids
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultReconcileAccountLimit
	}

	report := &ReconcileReport{
		DryRun:     !input.Apply,
		TotalDrift: decimal.Zero,
		StartedAt:  uc.clock.Now(),
	}

	for _, workspaceID := range workspaceIDs {
		wsReport := uc.reconcileWorkspace(ctx, workspaceID, input.Apply, limit)
		report.Workspaces = append(report.Workspaces, wsReport)
		report.Evaluated += wsReport.Evaluated
		report.Drifted += wsReport.Drifted
		report.Updated += wsReport.Updated
		report.Backfilled += wsReport.Backfilled
		report.Failed += wsReport.Failed
		report.TotalDrift = domain.RoundCents(report.TotalDrift.Add(wsReport.TotalDrift))
	}

	report.FinishedAt = uc.clock.Now()

	uc.audit.Record(ctx, &domain.AuditEvent{
		Action:   domain.AuditReconcileRun,
		ActorUID: input.ActorUID,
		Entity:   "reconciliation",
		Summary: fmt.Sprintf("evaluated %d accounts in %d workspaces, %d drifted, %d updated",
			report.Evaluated, len(report.Workspaces), report.Drifted, report.Updated),
		Payload:   map[string]any{"dry_run": report.DryRun, "total_drift": report.TotalDrift.String()},
		CreatedAt: report.FinishedAt,
	})

	return report, nil
}

func (uc *ReconcileUseCase) reconcileWorkspace(ctx context.Context, workspaceID string, apply bool, limit int) WorkspaceReport {
	wsReport := WorkspaceReport{WorkspaceID: workspaceID, TotalDrift: decimal.Zero}

	accounts, err := uc.accountRepo.List(ctx, workspaceID, limit)
	if err != nil {
		uc.logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("account listing failed")
		wsReport.Failed++
		return wsReport
	}

	results := make([]AccountResult, len(accounts))
	for i, account := range accounts {
		results[i] = uc.evaluateAccount(ctx, workspaceID, account)
	}

	if apply {
		// Writes for one workspace are independent of each other; issue them
		// concurrently but report only once all have settled.
		var wg sync.WaitGroup
		for i := range results {
			if results[i].Error != "" {
				continue
			}

			wg.Add(1)
			go func(i int, account *domain.Account) {
				defer wg.Done()
				if err := uc.applyResult(ctx, workspaceID, account, &results[i]); err != nil {
					results[i].Error = err.Error()
					uc.logger.Error().Err(err).
						Str("workspace_id", workspaceID).
						Str("account_id", account.ID).
						Msg("reconciliation write failed")
				}
			}(i, accounts[i])
		}
		wg.Wait()
	}

	for _, r := range results {
		wsReport.Accounts = append(wsReport.Accounts, r)
		if r.Error != "" {
			wsReport.Failed++
			continue
		}
		wsReport.Evaluated++
		if r.HasDrift {
			wsReport.Drifted++
			wsReport.TotalDrift = domain.RoundCents(wsReport.TotalDrift.Add(r.Drift.Abs()))
		}
		if r.NeedsBackfill {
			wsReport.Backfilled++
		}
		if r.Updated {
			wsReport.Updated++
		}
	}

	return wsReport
}

// evaluateAccount computes the movement sum and drift for one account without
// writing anything.
func (uc *ReconcileUseCase) evaluateAccount(ctx context.Context, workspaceID string, account *domain.Account) AccountResult {
	result := AccountResult{AccountID: account.ID, CurrentBalance: account.Balance}

	transactions, err := uc.txRepo.ListPaidByAccount(ctx, workspaceID, account.ID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	// Rounded after every accumulation step so float-era documents cannot
	// compound sub-cent residue across a long history.
	movement := decimal.Zero
	for _, t := range transactions {
		movement = domain.RoundCents(movement.Add(t.SignedAmount()))
	}
	result.Movement = movement

	if account.StartingBalance != nil {
		result.StartingBalance = *account.StartingBalance
	} else {
		// One-time anchor: the invariant becomes true by construction the
		// first time reconciliation sees a legacy account.
		result.StartingBalance = domain.RoundCents(account.Balance.Sub(movement))
		result.NeedsBackfill = true
	}

	result.ExpectedBalance = domain.RoundCents(result.StartingBalance.Add(movement))
	result.Drift = domain.RoundCents(result.ExpectedBalance.Sub(account.Balance))
	result.HasDrift = !domain.WithinCent(result.ExpectedBalance, account.Balance)

	return result
}

func (uc *ReconcileUseCase) applyResult(ctx context.Context, workspaceID string, account *domain.Account, result *AccountResult) error {
	now := uc.clock.Now()

	updated := *account
	updated.LastReconciledAt = &now

	if result.NeedsBackfill || result.HasDrift {
		starting := result.StartingBalance
		updated.StartingBalance = &starting
	}
	if result.HasDrift {
		updated.Balance = result.ExpectedBalance
		result.Updated = true
	}

	return uc.accountRepo.Update(ctx, workspaceID, &updated)
}
