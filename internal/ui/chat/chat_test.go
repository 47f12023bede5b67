// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/session"
	"github.com/jeranaias/reelbudget/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	offline.SetOfflineMode(true)
	t.Cleanup(func() { offline.SetOfflineMode(false) })

	sess := session.New(session.Options{Offline: true})
	m := New(sess, styles.NewTheme(), Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), sess
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

// runCmd executes cmd, expanding batches, and returns the first replyMsg.
func runCmd(t *testing.T, cmd tea.Cmd) (replyMsg, bool) {
	t.Helper()
	if cmd == nil {
		return replyMsg{}, false
	}
	switch msg := cmd().(type) {
	case replyMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if r, ok := runCmd(t, c); ok {
				return r, true
			}
		}
	}
	return replyMsg{}, false
}

// =============================================================================
// TESTS
// =============================================================================

func TestViewBeforeResize(t *testing.T) {
	sess := session.New(session.Options{Offline: true})
	m := New(sess, styles.NewTheme(), Options{})
	assert.Equal(t, "Loading...", m.View())
}

func TestViewShowsWelcomeAndOfflineBadge(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "reelbudget")
	assert.Contains(t, view, "[OFFLINE]")
	assert.Contains(t, view, "0 items")
	assert.Contains(t, view, "Welcome to Movie Magic Budgeting AI")
}

func TestSubmitTemplateRoundTrip(t *testing.T) {
	m, sess := newTestModel(t)
	m = typeText(m, "create a budget for a feature film")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Empty(t, m.input.Value())
	assert.False(t, m.input.Focused())

	reply, ok := runCmd(t, cmd)
	require.True(t, ok, "submit should dispatch the message")
	require.NoError(t, reply.err)
	assert.Equal(t, assistant.IntentGenerateTemplate, reply.reply.Intent)

	updated, _ = m.Update(reply)
	m = updated.(Model)
	assert.False(t, m.Busy())
	assert.True(t, m.input.Focused())
	assert.Contains(t, m.statusMsg, `"apply"`)

	_, pending := sess.PendingTemplate()
	assert.True(t, pending)
	assert.Contains(t, m.renderMessages(), "Feature Film Budget Template")
}

func TestApplyTemplateUpdatesHeader(t *testing.T) {
	m, sess := newTestModel(t)

	for _, text := range []string{"create a budget for a documentary", "apply it"} {
		m = typeText(m, text)
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		reply, ok := runCmd(t, cmd)
		require.True(t, ok)
		updated, _ = updated.(Model).Update(reply)
		m = updated.(Model)
	}

	assert.Positive(t, sess.Ledger().Len())
	assert.Equal(t, "Ledger updated", m.statusMsg)
	assert.NotContains(t, m.View(), "0 items |")
}

func TestSubmitIgnoredWhenEmptyOrBusy(t *testing.T) {
	m, sess := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "blank input should not dispatch")

	m = typeText(m, "analyze my budget")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.True(t, m.Busy())

	m = typeText(m, "ignored while busy")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())

	// Only the welcome message is logged until the pending command runs.
	assert.Equal(t, 1, sess.Conversation().Len())
}

func TestReplyErrorShownInStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m.busy = true

	updated, _ := m.Update(replyMsg{err: assistant.ErrBusy})
	m = updated.(Model)

	assert.False(t, m.Busy())
	assert.True(t, m.isError)
	assert.Contains(t, m.renderStatus(), "Still answering")
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestSlashQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(m, "/quit")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestResizeKeepsViewportPositive(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 3})
	m = updated.(Model)

	assert.Equal(t, 1, m.viewport.Height)
	assert.Equal(t, 20, m.viewport.Width)
}
