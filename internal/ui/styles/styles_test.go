// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusIndicatorsDistinct(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Active,
	}

	seen := make(map[string]bool)
	for _, ind := range indicators {
		assert.NotEmpty(t, ind)
		assert.False(t, seen[ind], "duplicate indicator %q", ind)
		seen[ind] = true
	}
}

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name      string
		render    func(string) string
		indicator string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.render("Ledger saved")
			assert.True(t, strings.Contains(got, "Ledger saved"))
			assert.True(t, strings.Contains(got, tt.indicator))
		})
	}
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	assert.Equal(t, 80, theme.Width)
	assert.Equal(t, 24, theme.Height)

	named := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserText", theme.UserText},
		{"AssistantText", theme.AssistantText},
		{"InputBorder", theme.InputBorder},
		{"StatusBar", theme.StatusBar},
		{"OverBudget", theme.OverBudget},
	}
	for _, s := range named {
		assert.Contains(t, s.style.Render("test"), "test", s.name)
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	assert.Equal(t, 120, theme.Width)
	assert.Equal(t, 40, theme.Height)
}
