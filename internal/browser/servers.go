// Package browser filters and orders listings already held in memory.
package browser

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/meur/cs2hub/internal/models"
)

// StatusAll disables the status filter
const StatusAll = "all"

// ServerFilter is the state of the server browser's search box and status select
type ServerFilter struct {
	Query  string
	Status string // "all", "online" or "offline"; empty means all
}

// FilterServers keeps servers whose name or map contains the query (case-insensitive)
// or whose IP contains it verbatim, and whose status matches.
func FilterServers(servers []models.GameServer, f ServerFilter) []models.GameServer {
	q := strings.ToLower(f.Query)
	return lo.Filter(servers, func(s models.GameServer, _ int) bool {
		matchesSearch := strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(s.IP, f.Query) ||
			strings.Contains(strings.ToLower(s.Map), q)

		matchesStatus := f.Status == "" || f.Status == StatusAll || string(s.Status) == f.Status

		return matchesSearch && matchesStatus
	})
}

// OnlineCount counts servers reporting online
func OnlineCount(servers []models.GameServer) int {
	return lo.CountBy(servers, func(s models.GameServer) bool {
		return s.Status == models.ServerOnline
	})
}

// TopRated returns up to n servers with the highest rating. The input is not reordered.
func TopRated(servers []models.GameServer, n int) []models.GameServer {
	sorted := append([]models.GameServer(nil), servers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Listing builds the server browser response for f
func Listing(servers []models.GameServer, f ServerFilter, topN int) models.ServerList {
	filtered := FilterServers(servers, f)
	return models.ServerList{
		Servers:     filtered,
		TopRated:    TopRated(servers, topN),
		OnlineCount: OnlineCount(servers),
		TotalCount:  len(filtered),
	}
}
