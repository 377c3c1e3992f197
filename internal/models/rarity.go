package models

import "fmt"

// Rarity is the desirability tier of a skin. Values read from the backend are
// kept as-is; Valid reports whether one is a known tier.
type Rarity string

const (
	RarityConsumer   Rarity = "Consumer"
	RarityIndustrial Rarity = "Industrial"
	RarityMilSpec    Rarity = "Mil-Spec"
	RarityRestricted Rarity = "Restricted"
	RarityClassified Rarity = "Classified"
	RarityCovert     Rarity = "Covert"
	RarityContraband Rarity = "Contraband"
)

var rarities = []Rarity{
	RarityConsumer,
	RarityIndustrial,
	RarityMilSpec,
	RarityRestricted,
	RarityClassified,
	RarityCovert,
	RarityContraband,
}

// Rarities returns every tier, lowest first
func Rarities() []Rarity {
	return append([]Rarity(nil), rarities...)
}

// ParseRarity returns the tier named s
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the seven tiers
func (r Rarity) Valid() bool {
	for _, known := range rarities {
		if r == known {
			return true
		}
	}
	return false
}

// Next returns the tier after r, wrapping around. The zero value advances to the lowest tier.
func (r Rarity) Next() Rarity {
	for i, known := range rarities {
		if r == known {
			return rarities[(i+1)%len(rarities)]
		}
	}
	return rarities[0]
}

func (r Rarity) String() string {
	return string(r)
}
