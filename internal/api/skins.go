package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
	"github.com/meur/cs2hub/internal/pkg/apierr"
	"github.com/meur/cs2hub/internal/pkg/observability"
	"github.com/meur/cs2hub/internal/storage"
)

// handleListSkins returns available skins, most expensive first
func (s *Server) handleListSkins(w http.ResponseWriter, r *http.Request) {
	q, err := parseSkinQuery(r.URL.Query())
	if err != nil {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("%s", err.Error()))
		return
	}

	skins, err := s.store.ListSkins(r.Context(), q)
	if err != nil {
		respondInternal(w, r, err, "Failed to fetch skins")
		return
	}
	respondJSON(w, http.StatusOK, skins)
}

func parseSkinQuery(values url.Values) (storage.SkinQuery, error) {
	var q storage.SkinQuery
	if v := values.Get("rarity"); v != "" {
		rarity, err := models.ParseRarity(v)
		if err != nil {
			return q, err
		}
		q.Rarity = rarity
	}
	q.Weapon = values.Get("weapon")

	bounds := []struct {
		key string
		dst **int64
	}{
		{"min_price", &q.MinPrice},
		{"max_price", &q.MaxPrice},
	}
	for _, b := range bounds {
		v := values.Get(b.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, errors.Errorf("%s must be an integer", b.key)
		}
		*b.dst = &n
	}
	return q, nil
}

// handleCreateSkin stores a new skin and returns its generated ID
func (s *Server) handleCreateSkin(w http.ResponseWriter, r *http.Request) {
	var draft models.SkinDraft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Invalid request body"))
		return
	}
	if err := draft.Validate(); err != nil {
		respondError(w, apierr.NewInvalidViolations(models.Violations(err)))
		return
	}

	id, err := s.store.CreateSkin(r.Context(), draft)
	if err != nil {
		respondInternal(w, r, err, "Failed to create skin")
		return
	}

	observability.CatalogueMutations.WithLabelValues("create").Inc()
	respondJSON(w, http.StatusCreated, models.SkinCreated{ID: id, Message: "Skin added successfully"})
}

// handleUpdateSkin replaces an existing skin with the full record in the body
func (s *Server) handleUpdateSkin(w http.ResponseWriter, r *http.Request) {
	var skin models.Skin
	if err := decodeJSON(r, &skin); err != nil {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Invalid request body"))
		return
	}
	if skin.ID == "" {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Skin ID required"))
		return
	}
	if err := skin.Draft().Validate(); err != nil {
		respondError(w, apierr.NewInvalidViolations(models.Violations(err)))
		return
	}

	found, err := s.store.UpdateSkin(r.Context(), skin)
	if err != nil {
		respondInternal(w, r, err, "Failed to update skin")
		return
	}
	if !found {
		respondError(w, apierr.ErrNotFound.WithMessage("Skin not found"))
		return
	}

	observability.CatalogueMutations.WithLabelValues("update").Inc()
	respondJSON(w, http.StatusOK, messageResponse{Message: "Skin updated successfully"})
}

// handleDeleteSkin withdraws the skin named by the id query parameter
func (s *Server) handleDeleteSkin(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, apierr.ErrInvalidRequest.WithMessage("Skin ID required"))
		return
	}

	found, err := s.store.DeleteSkin(r.Context(), id)
	if err != nil {
		respondInternal(w, r, err, "Failed to delete skin")
		return
	}
	if !found {
		respondError(w, apierr.ErrNotFound.WithMessage("Skin not found"))
		return
	}

	observability.CatalogueMutations.WithLabelValues("delete").Inc()
	respondJSON(w, http.StatusOK, messageResponse{Message: "Skin removed successfully"})
}
