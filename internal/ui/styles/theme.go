// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the terminal UI.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderInfo  lipgloss.Style

	// Messages
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	AssistantText  lipgloss.Style
	Timestamp      lipgloss.Style

	// Input and status
	InputBorder lipgloss.Style
	StatusBar   lipgloss.Style
	Thinking    lipgloss.Style
	ErrorText   lipgloss.Style
	OfflineTag  lipgloss.Style
	ShortcutKey lipgloss.Style
	HelpText    lipgloss.Style

	// Amounts
	OverBudget  lipgloss.Style
	UnderBudget lipgloss.Style
}

// NewTheme detects the terminal background and builds the styles.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Width:        80,
		Height:       24,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.HeaderInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(UserBubbleBorder).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(AssistantBubbleBorder).
		Bold(true)
	t.UserText = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		PaddingLeft(2)
	t.AssistantText = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		PaddingLeft(2)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.Thinking = lipgloss.NewStyle().
		Foreground(Cyan)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)
	t.OfflineTag = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan)
	t.HelpText = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.OverBudget = lipgloss.NewStyle().Foreground(Rose)
	t.UnderBudget = lipgloss.NewStyle().Foreground(Emerald)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
