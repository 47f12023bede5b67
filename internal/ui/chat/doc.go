// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat interface for reelbudget.

The chat package is a Bubble Tea program over a session.Session. Every
message typed at the prompt goes through the session's dispatcher, so the
TUI behaves exactly like the REPL and the HTTP chat route.

# Key Components

## Model (model.go)

Model holds the session, the input line, the scrolling message viewport
and the thinking spinner. While a reply is pending the input is blurred and
Enter is ignored, so only one message is in flight at a time.

## Update Loop (update.go)

Handles window resizes, key presses, spinner ticks and the replyMsg that
carries the dispatcher's answer back from its goroutine.

## View Rendering (view.go)

Draws the header (model, offline badge, ledger totals), the conversation,
a status line and the input box. Assistant replies are rendered as
markdown with glamour when colors are enabled.

# Usage

	m := chat.New(sess, styles.NewTheme(), chat.Options{Markdown: true})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
