package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
	"github.com/mfreita/contas/internal/usecase/mocks"
)

type transactionFixture struct {
	uc       *usecase.TransactionUseCase
	txs      *mocks.MockTransactionRepository
	accounts *mocks.MockAccountRepository
	cache    *mocks.MockCache
	audit    *mocks.MockAuditSink
}

func newTransactionFixture() *transactionFixture {
	f := &transactionFixture{
		txs:      mocks.NewMockTransactionRepository(),
		accounts: mocks.NewMockAccountRepository(),
		cache:    mocks.NewMockCache(),
		audit:    &mocks.MockAuditSink{},
	}
	f.uc = usecase.NewTransactionUseCase(
		f.txs, f.accounts, f.cache, f.audit,
		mocks.FixedClock{Instant: testNow}, &mocks.SequenceIDGenerator{},
	)
	return f
}

func TestTransactionCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("paid expense debits the account", func(t *testing.T) {
		f := newTransactionFixture()
		account := seedAccount(t, f.accounts, 500)

		tx, err := f.uc.Create(ctx, usecase.CreateTransactionInput{
			WorkspaceID: "ws-1",
			ActorUID:    "user-1",
			Amount:      decimal.NewFromInt(120),
			Type:        domain.TransactionExpense,
			Status:      domain.TransactionPaid,
			AccountID:   "acc-1",
		})
		require.NoError(t, err)
		assert.Equal(t, testNow, tx.Date, "date defaults to now")
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(380)))
		assert.Contains(t, f.audit.Actions(), domain.AuditTransactionCreate)
	})

	t.Run("pending transaction leaves the balance alone", func(t *testing.T) {
		f := newTransactionFixture()
		account := seedAccount(t, f.accounts, 500)

		_, err := f.uc.Create(ctx, usecase.CreateTransactionInput{
			WorkspaceID: "ws-1",
			Amount:      decimal.NewFromInt(120),
			Type:        domain.TransactionExpense,
			AccountID:   "acc-1",
		})
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("card transaction invalidates the summary cache", func(t *testing.T) {
		f := newTransactionFixture()

		_, err := f.uc.Create(ctx, usecase.CreateTransactionInput{
			WorkspaceID: "ws-1",
			Amount:      decimal.NewFromInt(50),
			Type:        domain.TransactionExpense,
			CardID:      "card-1",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.cache.Deletes)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		f := newTransactionFixture()

		_, err := f.uc.Create(ctx, usecase.CreateTransactionInput{
			WorkspaceID: "ws-1",
			Amount:      decimal.NewFromInt(-5),
			Type:        domain.TransactionExpense,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestTransactionDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses the balance effect", func(t *testing.T) {
		f := newTransactionFixture()
		account := seedAccount(t, f.accounts, 500)

		tx, err := f.uc.Create(ctx, usecase.CreateTransactionInput{
			WorkspaceID: "ws-1",
			Amount:      decimal.NewFromInt(120),
			Type:        domain.TransactionExpense,
			Status:      domain.TransactionPaid,
			AccountID:   "acc-1",
		})
		require.NoError(t, err)
		require.True(t, account.Balance.Equal(decimal.NewFromInt(380)))

		require.NoError(t, f.uc.Delete(ctx, "ws-1", "user-1", tx.ID))
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))

		_, err = f.txs.GetByID(ctx, "ws-1", tx.ID)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("falls back to the settling account", func(t *testing.T) {
		f := newTransactionFixture()
		account := seedAccount(t, f.accounts, 500)

		tx := &domain.Transaction{
			ID:            "tx-settled",
			WorkspaceID:   "ws-1",
			Amount:        decimal.NewFromInt(75),
			Type:          domain.TransactionExpense,
			Status:        domain.TransactionPaid,
			PaidAccountID: "acc-1",
			Date:          testNow,
		}
		require.NoError(t, f.txs.Create(ctx, "ws-1", tx))

		require.NoError(t, f.uc.Delete(ctx, "ws-1", "user-1", "tx-settled"))
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(575)))
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newTransactionFixture()
		err := f.uc.Delete(ctx, "ws-1", "user-1", "nope")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestTransactionCreate_StampsIDAndTimestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("tx-42")

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()

	uc := usecase.NewTransactionUseCase(
		mocks.NewMockTransactionRepository(), mocks.NewMockAccountRepository(),
		nil, &mocks.MockAuditSink{}, clock, idGen,
	)

	tx, err := uc.Create(context.Background(), usecase.CreateTransactionInput{
		WorkspaceID: "ws-1",
		ActorUID:    "user-1",
		Amount:      decimal.NewFromInt(42),
		Type:        domain.TransactionExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-42", tx.ID)
	assert.Equal(t, testNow, tx.CreatedAt)
	assert.Equal(t, testNow, tx.Date, "date defaults to the clock")
}
