package api

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
	"github.com/meur/cs2hub/internal/pkg/apierr"
	"github.com/meur/cs2hub/internal/pkg/observability"
	"github.com/meur/cs2hub/internal/storage"
)

// handleListTrades returns offers for a user, or the most recent offers overall
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	q := storage.TradeQuery{
		User:   r.URL.Query().Get("user"),
		Status: models.TradeStatus(r.URL.Query().Get("status")),
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("unknown trade status %q", q.Status))
		return
	}

	trades, err := s.store.ListTrades(r.Context(), q)
	if err != nil {
		respondInternal(w, r, err, "Failed to fetch trades")
		return
	}
	respondJSON(w, http.StatusOK, trades)
}

// handleCreateTrade opens a pending trade offer
func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req models.TradeCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Invalid request body"))
		return
	}
	if err := models.Validate.Struct(req); err != nil {
		respondError(w, apierr.NewInvalidViolations(models.Violations(err)))
		return
	}

	id, err := s.store.CreateTrade(r.Context(), req)
	if errors.Is(err, storage.ErrUnknownSkin) {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Invalid skin ID"))
		return
	}
	if err != nil {
		respondInternal(w, r, err, "Failed to create trade offer")
		return
	}

	observability.TradeTransitions.WithLabelValues(string(models.TradePending)).Inc()
	respondJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Trade offer created"})
}

// handleUpdateTrade moves an offer to a new status
func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	var req models.TradeStatusUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Invalid request body"))
		return
	}
	if err := models.Validate.Struct(req); err != nil {
		respondError(w, apierr.NewInvalidViolations(models.Violations(err)))
		return
	}

	found, err := s.store.UpdateTradeStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		respondInternal(w, r, err, "Failed to update trade offer")
		return
	}
	if !found {
		respondError(w, apierr.ErrNotFound.WithMessage("Trade offer not found"))
		return
	}

	observability.TradeTransitions.WithLabelValues(string(req.Status)).Inc()
	respondJSON(w, http.StatusOK, messageResponse{Message: "Trade offer updated"})
}
