package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/meur/cs2hub/internal/models"
)

// Theme defines the color palette for the admin screen. All colors use
// lipgloss ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Toast severities.
	ToastNormal      lipgloss.Color
	ToastDestructive lipgloss.Color

	// Rarity colors, lowest tier first.
	RarityColors [7]lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Rarity colors
// follow the in-game tier colors.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("214"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("245"),
	ToastNormal:        lipgloss.Color("42"),
	ToastDestructive:   lipgloss.Color("196"),
	RarityColors: [7]lipgloss.Color{
		lipgloss.Color("250"), // Consumer
		lipgloss.Color("111"), // Industrial
		lipgloss.Color("33"),  // Mil-Spec
		lipgloss.Color("99"),  // Restricted
		lipgloss.Color("170"), // Classified
		lipgloss.Color("160"), // Covert
		lipgloss.Color("178"), // Contraband
	},
}

// RarityColor returns the color for a tier. Unknown values return FaintText.
func (theme Theme) RarityColor(rarity models.Rarity) lipgloss.Color {
	for i, known := range models.Rarities() {
		if known == rarity {
			return theme.RarityColors[i]
		}
	}
	return theme.FaintText
}
