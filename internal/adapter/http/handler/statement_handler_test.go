package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/adapter/http/dto"
	"github.com/mfreita/contas/internal/adapter/http/middleware"
	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
)

type statementServiceStub struct {
	generateFn     func(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error)
	updateAmountFn func(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error)
	payFn          func(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error)
	reopenFn       func(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error)
	listByCardFn   func(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error)
}

func (s *statementServiceStub) Generate(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error) {
	return s.generateFn(ctx, input)
}

func (s *statementServiceStub) UpdateAmount(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error) {
	return s.updateAmountFn(ctx, input)
}

func (s *statementServiceStub) Pay(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error) {
	return s.payFn(ctx, workspaceID, actorUID, statementID, accountID)
}

func (s *statementServiceStub) Reopen(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error) {
	return s.reopenFn(ctx, workspaceID, actorUID, statementID)
}

func (s *statementServiceStub) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
	return s.listByCardFn(ctx, workspaceID, cardID)
}

type cardServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error)
	getFn    func(ctx context.Context, workspaceID, id string) (*domain.Card, error)
	listFn   func(ctx context.Context, workspaceID string) ([]*domain.Card, error)
}

func (s *cardServiceStub) CreateCard(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error) {
	return s.createFn(ctx, input)
}

func (s *cardServiceStub) GetCard(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
	return s.getFn(ctx, workspaceID, id)
}

func (s *cardServiceStub) ListCards(ctx context.Context, workspaceID string) ([]*domain.Card, error) {
	return s.listFn(ctx, workspaceID)
}

func workspaceRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithWorkspace(req.Context(), "ws-1")
	ctx = middleware.WithActor(ctx, "user-1")
	return req.WithContext(ctx)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func testCardStub(t *testing.T) *cardServiceStub {
	t.Helper()
	return &cardServiceStub{
		getFn: func(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
			if workspaceID != "ws-1" {
				t.Fatalf("expected workspace ws-1, got %s", workspaceID)
			}
			return &domain.Card{
				ID:         id,
				Name:       "Visa",
				ClosingDay: 10,
				DueDay:     17,
			}, nil
		},
	}
}

func TestStatementHandler_Generate_UsesCardCycleDays(t *testing.T) {
	var captured usecase.GenerateStatementInput
	statement := &domain.CardStatement{ID: "st-1", CardID: "card-1", Month: 4, Year: 2024}

	h := NewStatementHandler(&statementServiceStub{
		generateFn: func(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error) {
			captured = input
			return statement, true, nil
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.GenerateStatementRequest{Month: 4, Year: 2024})
	req := setChiURLParam(workspaceRequest(http.MethodPost, "/cards/card-1/statements", body), "id", "card-1")
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ClosingDay != 10 || captured.DueDay != 17 {
		t.Fatalf("expected cycle days from card, got %+v", captured)
	}
	if captured.Key.Month != 4 || captured.Key.Year != 2024 {
		t.Fatalf("expected key 04/2024, got %+v", captured.Key)
	}
}

func TestStatementHandler_Generate_ExistingReturns200(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		generateFn: func(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error) {
			return &domain.CardStatement{ID: "st-1"}, false, nil
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.GenerateStatementRequest{Month: 4, Year: 2024})
	req := setChiURLParam(workspaceRequest(http.MethodPost, "/cards/card-1/statements", body), "id", "card-1")
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for pre-existing statement, got %d", rec.Code)
	}
}

func TestStatementHandler_Generate_CardNotFound(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		generateFn: func(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error) {
			t.Fatal("Generate should not be called when the card lookup fails")
			return nil, false, nil
		},
	}, &cardServiceStub{
		getFn: func(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
			return nil, domain.ErrCardNotFound
		},
	})

	body, _ := json.Marshal(dto.GenerateStatementRequest{Month: 4, Year: 2024})
	req := setChiURLParam(workspaceRequest(http.MethodPost, "/cards/card-1/statements", body), "id", "card-1")
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatementHandler_UpdateAmount_NoStatementNoSeed(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		updateAmountFn: func(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error) {
			if input.Seed != nil {
				t.Fatal("expected no seed without the seed flag")
			}
			return nil, nil
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.UpdateStatementAmountRequest{Month: 4, Year: 2024, Amount: decimal.NewFromInt(100)})
	req := setChiURLParam(workspaceRequest(http.MethodPut, "/cards/card-1/statements/amount", body), "id", "card-1")
	rec := httptest.NewRecorder()

	h.UpdateAmount(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for the silent no-op, got %d", rec.Code)
	}
}

func TestStatementHandler_UpdateAmount_SeedResolvesCard(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		updateAmountFn: func(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error) {
			if input.Seed == nil {
				t.Fatal("expected seed to be populated from the card")
			}
			if input.Seed.ClosingDay != 10 || input.Seed.DueDay != 17 {
				t.Fatalf("expected seed cycle days from card, got %+v", input.Seed)
			}
			return &domain.CardStatement{ID: "st-1", TotalAmount: input.NewAmount}, nil
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.UpdateStatementAmountRequest{Month: 4, Year: 2024, Amount: decimal.NewFromInt(100), Seed: true})
	req := setChiURLParam(workspaceRequest(http.MethodPut, "/cards/card-1/statements/amount", body), "id", "card-1")
	rec := httptest.NewRecorder()

	h.UpdateAmount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStatementHandler_Pay(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		payFn: func(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error) {
			if statementID != "st-1" || accountID != "acc-1" {
				t.Fatalf("unexpected pay args: %s %s", statementID, accountID)
			}
			return &domain.CardStatement{ID: "st-1", Status: domain.StatementPaid}, nil
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.PayStatementRequest{AccountID: "acc-1"})
	req := setChiURLParam(workspaceRequest(http.MethodPost, "/statements/st-1/pay", body), "id", "st-1")
	rec := httptest.NewRecorder()

	h.Pay(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.StatementPaid) {
		t.Fatalf("expected paid status, got %s", resp.Status)
	}
}

func TestStatementHandler_Pay_MissingAccount(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		payFn: func(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error) {
			return nil, domain.ErrMissingAccount
		},
	}, testCardStub(t))

	body, _ := json.Marshal(dto.PayStatementRequest{})
	req := setChiURLParam(workspaceRequest(http.MethodPost, "/statements/st-1/pay", body), "id", "st-1")
	rec := httptest.NewRecorder()

	h.Pay(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStatementHandler_Reopen_NotPaid(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		reopenFn: func(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error) {
			return nil, domain.ErrStatementNotPaid
		},
	}, testCardStub(t))

	req := setChiURLParam(workspaceRequest(http.MethodPost, "/statements/st-1/reopen", nil), "id", "st-1")
	rec := httptest.NewRecorder()

	h.Reopen(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestStatementHandler_ListByCard(t *testing.T) {
	h := NewStatementHandler(&statementServiceStub{
		listByCardFn: func(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
			return []*domain.CardStatement{{ID: "st-1"}, {ID: "st-2"}}, nil
		},
	}, testCardStub(t))

	req := setChiURLParam(workspaceRequest(http.MethodGet, "/cards/card-1/statements", nil), "id", "card-1")
	rec := httptest.NewRecorder()

	h.ListByCard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(resp))
	}
}
