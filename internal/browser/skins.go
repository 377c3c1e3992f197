package browser

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/meur/cs2hub/internal/models"
)

// SkinFilter mirrors the query parameters of the skins resource for lists held client-side
type SkinFilter struct {
	Rarity        models.Rarity
	Weapon        string // Case-insensitive substring
	MinPrice      *int64
	MaxPrice      *int64
	AvailableOnly bool
}

// FilterSkins keeps the skins matching every set field of f
func FilterSkins(skins []models.Skin, f SkinFilter) []models.Skin {
	weapon := strings.ToLower(f.Weapon)
	return lo.Filter(skins, func(s models.Skin, _ int) bool {
		switch {
		case f.AvailableOnly && !s.IsAvailable:
			return false
		case f.Rarity != "" && s.Rarity != f.Rarity:
			return false
		case weapon != "" && !strings.Contains(strings.ToLower(s.Weapon), weapon):
			return false
		case f.MinPrice != nil && s.Price < *f.MinPrice:
			return false
		case f.MaxPrice != nil && s.Price > *f.MaxPrice:
			return false
		}
		return true
	})
}

// SearchSkins matches the query against name, weapon, rarity and owner, ignoring case.
// An empty query returns the input unchanged.
func SearchSkins(skins []models.Skin, query string) []models.Skin {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return skins
	}
	return lo.Filter(skins, func(s models.Skin, _ int) bool {
		return strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Weapon), q) ||
			strings.Contains(strings.ToLower(string(s.Rarity)), q) ||
			strings.Contains(strings.ToLower(s.OwnerName), q)
	})
}

// SortByPriceDesc returns a copy ordered most expensive first; ties keep their order.
func SortByPriceDesc(skins []models.Skin) []models.Skin {
	sorted := append([]models.Skin(nil), skins...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})
	return sorted
}
