package api

import (
	"net/http"

	"github.com/meur/cs2hub/internal/browser"
	"github.com/meur/cs2hub/internal/models"
	"github.com/meur/cs2hub/internal/pkg/apierr"
)

// topRatedCount is the size of the "top rated" strip in the server browser
const topRatedCount = 3

// handleListServers returns the server browser listing for ?q= and ?status=
func (s *Server) handleListServers(w http.ResponseWriter, r *http.Request) {
	f := browser.ServerFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	switch f.Status {
	case "", browser.StatusAll, string(models.ServerOnline), string(models.ServerOffline):
	default:
		respondError(w, apierr.ErrInvalidRequest.WithMessage("unknown server status %q", f.Status))
		return
	}

	servers, err := s.store.GetServers(r.Context())
	if err != nil {
		respondInternal(w, r, err, "Failed to fetch servers")
		return
	}
	respondJSON(w, http.StatusOK, browser.Listing(servers, f, topRatedCount))
}
