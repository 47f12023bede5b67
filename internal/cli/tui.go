// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen terminal UI, the default when no command is given.
package cli

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/ui/chat"
	"github.com/jeranaias/reelbudget/internal/ui/styles"
)

// runTUI starts the Bubble Tea chat screen. Without a terminal on both ends
// it falls back to the line-based chat.
func runTUI(cmd *cobra.Command, args []string) error {
	if flagJSON || !IsTTY() || !IsStdoutTTY() {
		return runChat(cmd, args)
	}

	sess, cfg, cleanup, err := openSession(openOptions{allowMissingLedger: true})
	if err != nil {
		return err
	}
	defer cleanup()

	m := chat.New(sess, styles.NewTheme(), chat.Options{Markdown: cfg.UI.Markdown && ColorsEnabled()})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	st := sess.GetStatus()
	log.Printf("TUI_EXIT | session=%s messages=%d items=%d", st.SessionID, st.Messages, st.Items)
	return nil
}
