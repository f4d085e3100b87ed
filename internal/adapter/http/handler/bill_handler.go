package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfreita/contas/internal/adapter/http/dto"
	"github.com/mfreita/contas/internal/adapter/http/middleware"
	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
)

// BillService defines the behavior needed by BillHandler.
type BillService interface {
	CreateBill(ctx context.Context, input usecase.CreateBillInput) (*domain.RecurringBill, error)
	GeneratePayments(ctx context.Context, workspaceID, actorUID string, key domain.StatementKey) (*usecase.GeneratePaymentsResult, error)
	MarkPaid(ctx context.Context, input usecase.MarkPaidInput) (*domain.BillPayment, error)
	MarkPending(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error)
	MarkSkipped(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error)
	ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error)
}

// BillHandler handles recurring-bill and bill-payment HTTP requests.
type BillHandler struct {
	billUC BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billUC BillService) *BillHandler {
	return &BillHandler{billUC: billUC}
}

// Create creates a new recurring bill.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	workspaceID := middleware.WorkspaceID(r.Context())
	bill, err := h.billUC.CreateBill(r.Context(), req.ToUseCaseInput(workspaceID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create bill", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BillFromDomain(bill))
}

// GeneratePayments instantiates the period's payment for every active bill.
func (h *BillHandler) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	var req dto.GeneratePaymentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	result, err := h.billUC.GeneratePayments(ctx, middleware.WorkspaceID(ctx), middleware.ActorUID(ctx),
		domain.StatementKey{Month: req.Month, Year: req.Year})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate bill payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GeneratePaymentsResponse{
		Created:    dto.BillPaymentsFromDomain(result.Created),
		Deduped:    result.Deduped,
		BillsTotal: result.BillsTotal,
	})
}

// MarkPaid settles a bill payment.
func (h *BillHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	payment, err := h.billUC.MarkPaid(ctx, usecase.MarkPaidInput{
		WorkspaceID: middleware.WorkspaceID(ctx),
		ActorUID:    middleware.ActorUID(ctx),
		PaymentID:   paymentID,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
		Note:        req.Note,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to mark payment paid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BillPaymentFromDomain(payment))
}

// MarkPending reverses a settled payment back to pending or overdue.
func (h *BillHandler) MarkPending(w http.ResponseWriter, r *http.Request) {
	h.revert(w, r, false)
}

// MarkSkipped marks a payment skipped, reversing any settlement first.
func (h *BillHandler) MarkSkipped(w http.ResponseWriter, r *http.Request) {
	h.revert(w, r, true)
}

func (h *BillHandler) revert(w http.ResponseWriter, r *http.Request, skip bool) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	ctx := r.Context()
	workspaceID := middleware.WorkspaceID(ctx)
	actorUID := middleware.ActorUID(ctx)

	var (
		payment *domain.BillPayment
		err     error
	)
	if skip {
		payment, err = h.billUC.MarkSkipped(ctx, workspaceID, actorUID, paymentID)
	} else {
		payment, err = h.billUC.MarkPending(ctx, workspaceID, actorUID, paymentID)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to revert payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BillPaymentFromDomain(payment))
}

// ListByPeriod lists a period's bill payments, duplicates collapsed.
func (h *BillHandler) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	key := domain.StatementKey{
		Month: parseIntQuery(r, "month", 0),
		Year:  parseIntQuery(r, "year", 0),
	}

	payments, err := h.billUC.ListByPeriod(r.Context(), middleware.WorkspaceID(r.Context()), key)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list bill payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BillPaymentsFromDomain(payments))
}
