package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/adapter/http/dto"
	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
)

type summaryServiceStub struct {
	summaryFn func(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error)
}

func (s *summaryServiceStub) CardSummary(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error) {
	return s.summaryFn(ctx, workspaceID, cardID)
}

func TestCardHandler_Create(t *testing.T) {
	var captured usecase.CreateCardInput
	h := NewCardHandler(&cardServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error) {
			captured = input
			return &domain.Card{ID: "card-1", Name: input.Name}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateCardRequest{Name: "Visa", Limit: decimal.NewFromInt(1000), ClosingDay: 10, DueDay: 17})
	req := workspaceRequest(http.MethodPost, "/cards", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.WorkspaceID != "ws-1" || captured.ClosingDay != 10 {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestCardHandler_Create_NegativeLimit(t *testing.T) {
	h := NewCardHandler(&cardServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error) {
			return nil, domain.ErrInvalidAmount
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateCardRequest{Name: "Visa", Limit: decimal.NewFromInt(-5)})
	req := workspaceRequest(http.MethodPost, "/cards", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCardHandler_Summary(t *testing.T) {
	h := NewCardHandler(testCardStub(t), &summaryServiceStub{
		summaryFn: func(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error) {
			if workspaceID != "ws-1" || cardID != "card-1" {
				t.Fatalf("unexpected scope: %s %s", workspaceID, cardID)
			}
			return &domain.CardLimitSummary{
				Outstanding: decimal.NewFromInt(400),
				Available:   decimal.NewFromInt(600),
				UsedPercent: decimal.NewFromInt(40),
			}, nil
		},
	})

	req := setChiURLParam(workspaceRequest(http.MethodGet, "/cards/card-1/summary", nil), "id", "card-1")
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Outstanding.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected outstanding 400, got %s", resp.Outstanding)
	}
}

func TestCardHandler_Summary_CardNotFound(t *testing.T) {
	h := NewCardHandler(testCardStub(t), &summaryServiceStub{
		summaryFn: func(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error) {
			return nil, domain.ErrCardNotFound
		},
	})

	req := setChiURLParam(workspaceRequest(http.MethodGet, "/cards/card-9/summary", nil), "id", "card-9")
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
