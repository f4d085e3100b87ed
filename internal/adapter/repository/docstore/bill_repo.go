package docstore

import (
	"context"
	"errors"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
)

// BillRepository implements usecase.BillRepository.
type BillRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewBillRepository creates a new BillRepository.
func NewBillRepository(store *docstore.Store, retrier *Retrier) *BillRepository {
	return &BillRepository{store: store, retrier: retrier}
}

// Create creates a new recurring bill.
func (r *BillRepository) Create(ctx context.Context, workspaceID string, bill *domain.RecurringBill) error {
	data, err := encode(bill)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collBills, bill.ID, data)
	})
}

// GetByID retrieves a bill by ID.
func (r *BillRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.RecurringBill, error) {
	data, err := r.store.Get(ctx, workspaceID, collBills, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return decode[domain.RecurringBill](data)
}

// ListActive returns the workspace's active bill templates.
func (r *BillRepository) ListActive(ctx context.Context, workspaceID string) ([]*domain.RecurringBill, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collBills, filter(map[string]any{"isActive": true}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.RecurringBill](bodies)
}

// BillPaymentRepository implements usecase.BillPaymentRepository.
type BillPaymentRepository struct {
	store   *docstore.Store
	retrier *Retrier
}

// NewBillPaymentRepository creates a new BillPaymentRepository.
func NewBillPaymentRepository(store *docstore.Store, retrier *Retrier) *BillPaymentRepository {
	return &BillPaymentRepository{store: store, retrier: retrier}
}

// Create creates a new bill payment.
func (r *BillPaymentRepository) Create(ctx context.Context, workspaceID string, payment *domain.BillPayment) error {
	data, err := encode(payment)
	if err != nil {
		return err
	}
	return r.retrier.Retry(ctx, func() error {
		return r.store.Create(ctx, workspaceID, collBillPayments, payment.ID, data)
	})
}

// GetByID retrieves a bill payment by ID.
func (r *BillPaymentRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.BillPayment, error) {
	data, err := r.store.Get(ctx, workspaceID, collBillPayments, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return decode[domain.BillPayment](data)
}

// Update replaces a bill payment document.
func (r *BillPaymentRepository) Update(ctx context.Context, workspaceID string, payment *domain.BillPayment) error {
	data, err := encode(payment)
	if err != nil {
		return err
	}
	err = r.retrier.Retry(ctx, func() error {
		return r.store.Update(ctx, workspaceID, collBillPayments, payment.ID, data)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrPaymentNotFound
	}
	return err
}

// Delete removes a bill payment.
func (r *BillPaymentRepository) Delete(ctx context.Context, workspaceID, id string) error {
	err := r.retrier.Retry(ctx, func() error {
		return r.store.Delete(ctx, workspaceID, collBillPayments, id)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrPaymentNotFound
	}
	return err
}

// FindByBill returns every payment stored for the (bill, period), duplicates
// included.
func (r *BillPaymentRepository) FindByBill(ctx context.Context, workspaceID, billID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collBillPayments,
		filter(map[string]any{"billId": billID, "month": key.Month, "year": key.Year}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.BillPayment](bodies)
}

// ListByPeriod returns the workspace's payments for one period.
func (r *BillPaymentRepository) ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	bodies, err := r.store.Query(ctx, workspaceID, collBillPayments,
		filter(map[string]any{"month": key.Month, "year": key.Year}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.BillPayment](bodies)
}
