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

// CardService defines the behavior needed by CardHandler.
type CardService interface {
	CreateCard(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error)
	GetCard(ctx context.Context, workspaceID, id string) (*domain.Card, error)
	ListCards(ctx context.Context, workspaceID string) ([]*domain.Card, error)
}

// SummaryService defines the behavior needed for card limit summaries.
type SummaryService interface {
	CardSummary(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error)
}

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardUC    CardService
	summaryUC SummaryService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardUC CardService, summaryUC SummaryService) *CardHandler {
	return &CardHandler{cardUC: cardUC, summaryUC: summaryUC}
}

// Create creates a new card.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	workspaceID := middleware.WorkspaceID(r.Context())
	card, err := h.cardUC.CreateCard(r.Context(), req.ToUseCaseInput(workspaceID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create card", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromDomain(card))
}

// Get retrieves a card by ID.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	card, err := h.cardUC.GetCard(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get card", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}

// List lists the workspace's cards.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardUC.ListCards(r.Context(), middleware.WorkspaceID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardsFromDomain(cards))
}

// Summary returns the card's outstanding balance and limit usage.
func (h *CardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	summary, err := h.summaryUC.CardSummary(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute card summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
