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

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	Generate(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error)
	UpdateAmount(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error)
	Pay(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error)
	Reopen(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error)
	ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error)
}

// StatementHandler handles statement lifecycle HTTP requests. It resolves the
// card itself so cycle dates come from the card's closing and due days.
type StatementHandler struct {
	statementUC StatementService
	cardUC      CardService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService, cardUC CardService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC, cardUC: cardUC}
}

// Generate creates the statement for a card's billing cycle.
func (h *StatementHandler) Generate(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	var req dto.GenerateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	workspaceID := middleware.WorkspaceID(ctx)

	card, err := h.cardUC.GetCard(ctx, workspaceID, cardID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get card", err.Error())
		return
	}

	statement, created, err := h.statementUC.Generate(ctx, usecase.GenerateStatementInput{
		WorkspaceID: workspaceID,
		ActorUID:    middleware.ActorUID(ctx),
		CardID:      card.ID,
		CardName:    card.Name,
		Key:         domain.StatementKey{Month: req.Month, Year: req.Year},
		ClosingDay:  card.ClosingDay,
		DueDay:      card.DueDay,
		AutoTotal:   req.AutoTotal,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate statement", err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.StatementFromDomain(statement))
}

// UpdateAmount sets a statement total for a card's cycle.
func (h *StatementHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	var req dto.UpdateStatementAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	workspaceID := middleware.WorkspaceID(ctx)

	input := usecase.UpdateStatementAmountInput{
		WorkspaceID: workspaceID,
		ActorUID:    middleware.ActorUID(ctx),
		CardID:      cardID,
		Key:         domain.StatementKey{Month: req.Month, Year: req.Year},
		NewAmount:   req.Amount,
		Mode:        domain.AmountMode(req.Mode),
		Source:      req.Source,
		Note:        req.Note,
	}
	if req.Seed {
		card, err := h.cardUC.GetCard(ctx, workspaceID, cardID)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to get card", err.Error())
			return
		}
		input.Seed = &usecase.StatementSeed{
			CardName:   card.Name,
			ClosingDay: card.ClosingDay,
			DueDay:     card.DueDay,
		}
	}

	statement, err := h.statementUC.UpdateAmount(ctx, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update statement amount", err.Error())
		return
	}
	if statement == nil {
		// No statement exists for the cycle and no seed was supplied.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// Pay settles a statement from an account.
func (h *StatementHandler) Pay(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")
	if statementID == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	var req dto.PayStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	statement, err := h.statementUC.Pay(ctx, middleware.WorkspaceID(ctx), middleware.ActorUID(ctx), statementID, req.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to pay statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// Reopen reverses a statement payment.
func (h *StatementHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")
	if statementID == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	ctx := r.Context()
	statement, err := h.statementUC.Reopen(ctx, middleware.WorkspaceID(ctx), middleware.ActorUID(ctx), statementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reopen statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// ListByCard lists a card's statements, duplicates collapsed.
func (h *StatementHandler) ListByCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	statements, err := h.statementUC.ListByCard(r.Context(), middleware.WorkspaceID(r.Context()), cardID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list statements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementsFromDomain(statements))
}
