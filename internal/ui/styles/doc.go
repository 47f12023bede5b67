// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lipgloss styles shared by the
reelbudget terminal UI and the plain CLI.

All colors are lipgloss AdaptiveColor values so they follow the terminal's
light or dark background.

# Colors (colors.go)

  - Purple - assistant messages and titles
  - Cyan - user highlights, commands, the thinking spinner
  - Emerald - success and under-budget amounts
  - Rose - errors and over-budget amounts
  - Amber - warnings and the offline badge

Status is never shown by color alone: RenderSuccess, RenderError and
RenderWarning prefix the ASCII StatusIndicators.

# Theme (theme.go)

Theme bundles the styles the chat TUI draws with:

	theme := styles.NewTheme()
	header := theme.HeaderTitle.Render("reelbudget")
*/
package styles
