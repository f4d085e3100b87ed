package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfreita/contas/internal/adapter/http/dto"
	"github.com/mfreita/contas/internal/usecase"
)

type reconcileServiceStub struct {
	reconcileFn func(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error)
}

func (s *reconcileServiceStub) Reconcile(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error) {
	return s.reconcileFn(ctx, input)
}

func TestReconcileHandler_ScopedToRequestWorkspace(t *testing.T) {
	var captured usecase.ReconcileInput
	h := NewReconcileHandler(&reconcileServiceStub{
		reconcileFn: func(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error) {
			captured = input
			return &usecase.ReconcileReport{DryRun: !input.Apply, Evaluated: 3}, nil
		},
	})

	body, _ := json.Marshal(dto.ReconcileRequest{Apply: true, Limit: 50})
	req := workspaceRequest(http.MethodPost, "/reconcile", body)
	rec := httptest.NewRecorder()

	h.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(captured.WorkspaceIDs) != 1 || captured.WorkspaceIDs[0] != "ws-1" {
		t.Fatalf("expected run scoped to ws-1, got %v", captured.WorkspaceIDs)
	}
	if !captured.Apply || captured.Limit != 50 {
		t.Fatalf("expected apply=true limit=50, got %+v", captured)
	}
}

func TestReconcileHandler_EmptyBodyIsDryRun(t *testing.T) {
	var captured usecase.ReconcileInput
	h := NewReconcileHandler(&reconcileServiceStub{
		reconcileFn: func(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error) {
			captured = input
			return &usecase.ReconcileReport{DryRun: true}, nil
		},
	})

	req := workspaceRequest(http.MethodPost, "/reconcile", nil)
	rec := httptest.NewRecorder()

	h.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Apply {
		t.Fatal("expected dry run without an explicit apply flag")
	}

	var report usecase.ReconcileReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if !report.DryRun {
		t.Fatal("expected report to say dry run")
	}
}
