package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	docstoreRepo "github.com/mfreita/contas/internal/adapter/repository/docstore"
	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/auditsink"
	"github.com/mfreita/contas/internal/infrastructure/config"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
	"github.com/mfreita/contas/internal/infrastructure/logger"
	"github.com/mfreita/contas/internal/infrastructure/postgres"
	"github.com/mfreita/contas/internal/usecase"
)

// The CLI wires use cases straight onto the database. It exists for the batch
// jobs that are not workspace-scoped: cross-workspace reconciliation and
// period rollover of bill payments.

func main() {
	rootCmd := &cobra.Command{
		Use:   "contas-cli",
		Short: "Contas batch tool",
		Long:  `Batch operations for the contas reconciliation engine.`,
	}

	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(billsCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// env holds everything a command needs after wiring.
type env struct {
	cfg       *config.Config
	reconcile *usecase.ReconcileUseCase
	bills     *usecase.BillUseCase
	close     func()
}

func wire(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "contas-cli"})

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	store := docstore.New(pool)
	retrier := docstoreRepo.NewRetrier(appLogger)
	idGen := docstoreRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	accountRepo := docstoreRepo.NewAccountRepository(store, retrier)
	txRepo := docstoreRepo.NewTransactionRepository(store, retrier)
	billRepo := docstoreRepo.NewBillRepository(store, retrier)
	paymentRepo := docstoreRepo.NewBillPaymentRepository(store, retrier)
	workspaceRepo := docstoreRepo.NewWorkspaceRepository(store)
	auditRepo := docstoreRepo.NewAuditRepository(store, retrier)

	audit := auditsink.New(auditsink.Config{
		Writer:     auditRepo,
		IDGen:      idGen,
		Logger:     appLogger,
		BufferSize: cfg.AuditBufferSize,
	})
	audit.Start()

	return &env{
		cfg:       cfg,
		reconcile: usecase.NewReconcileUseCase(workspaceRepo, accountRepo, txRepo, audit, clock, appLogger),
		bills:     usecase.NewBillUseCase(billRepo, paymentRepo, txRepo, accountRepo, audit, clock, idGen, appLogger),
		close: func() {
			audit.Close()
			pool.Close()
		},
	}, nil
}

func reconcileCmd() *cobra.Command {
	var (
		apply      bool
		workspaces []string
		limit      int
		cmdTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute account balances from paid transactions",
		Long: `Walks every account and compares its stored balance against
starting balance plus paid movement. Without --apply nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
			defer cancel()

			e, err := wire(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			report, err := e.reconcile.Reconcile(ctx, usecase.ReconcileInput{
				WorkspaceIDs: workspaces,
				Apply:        apply,
				Limit:        limit,
				ActorUID:     "cli",
			})
			if err != nil {
				return err
			}

			printJSON(report)
			if report.Failed > 0 {
				return fmt.Errorf("%d account(s) failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Write repaired balances instead of reporting")
	cmd.Flags().StringSliceVar(&workspaces, "workspace", nil, "Limit the run to these workspaces (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max accounts per workspace (0 = default)")
	cmd.Flags().DurationVar(&cmdTimeout, "timeout", 10*time.Minute, "Run timeout")

	return cmd
}

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Recurring bill operations",
	}
	cmd.AddCommand(generatePaymentsCmd())
	return cmd
}

func generatePaymentsCmd() *cobra.Command {
	var (
		workspace string
		month     int
		year      int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Instantiate the period's payment for every active bill",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := domain.StatementKey{Month: month, Year: year}
			if month == 0 && year == 0 {
				now := time.Now().UTC()
				key = domain.StatementKey{Month: int(now.Month()), Year: now.Year()}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			e, err := wire(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			result, err := e.bills.GeneratePayments(ctx, workspace, "cli", key)
			if err != nil {
				return err
			}

			fmt.Printf("period %02d/%d: %d bill(s), %d created, %d duplicate(s) collapsed\n",
				key.Month, key.Year, result.BillsTotal, len(result.Created), result.Deduped)
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace to generate for")
	cmd.Flags().IntVar(&month, "month", 0, "Period month (defaults to current)")
	cmd.Flags().IntVar(&year, "year", 0, "Period year (defaults to current)")
	cmd.MarkFlagRequired("workspace")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "contas-cli"})
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "contas-cli"})
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, appLogger)
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
