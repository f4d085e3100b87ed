package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mfreita/contas/internal/adapter/http/dto"
	"github.com/mfreita/contas/internal/adapter/http/middleware"
	"github.com/mfreita/contas/internal/usecase"
)

// ReconcileService defines the behavior needed by ReconcileHandler.
type ReconcileService interface {
	Reconcile(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error)
}

// ReconcileHandler exposes the balance reconciliation batch job. Scoping to
// the caller's workspace is deliberate: cross-workspace runs go through the
// CLI, not the API.
type ReconcileHandler struct {
	reconcileUC ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileUC ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileUC: reconcileUC}
}

// Run executes a reconciliation pass for the caller's workspace. Without an
// explicit apply flag it is a dry run.
func (h *ReconcileHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	input := req.ToUseCaseInput(middleware.ActorUID(ctx))
	input.WorkspaceIDs = []string{middleware.WorkspaceID(ctx)}

	report, err := h.reconcileUC.Reconcile(ctx, input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reconciliation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
