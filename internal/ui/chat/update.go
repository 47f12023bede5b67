// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/reelbudget/internal/assistant"
)

// Rows taken by everything except the viewport:
// header, status line, bordered input (3), help line.
const chromeHeight = 6

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case replyMsg:
		return m.handleReply(msg)

	case ollamaStatusMsg:
		if !msg.running {
			m.statusMsg = "Ollama unreachable, answering with built-in replies"
			m.isError = true
			log.Printf("TUI_OLLAMA_CHECK | running=false error=%v", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width != m.width {
		m.renderer = nil
		m.rendered = make(map[string]string)
	}
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-chromeHeight, 1)
	m.input.Width = max(msg.Width-8, 10)
	m.help.Width = msg.Width
	m.ready = true

	m.updateViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.LineUp):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.LineDown):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	switch strings.ToLower(text) {
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	}

	m.input.Reset()
	m.input.Blur()
	m.busy = true
	m.statusMsg = ""
	m.isError = false
	m.updateViewport()

	return m, tea.Batch(sendCmd(m.sess, text), m.spinner.Tick)
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	cmd := m.input.Focus()

	switch {
	case errors.Is(msg.err, assistant.ErrBusy):
		m.statusMsg = "Still answering the previous message"
		m.isError = true
	case msg.err != nil:
		m.statusMsg = msg.err.Error()
		m.isError = true
	case msg.reply.Intent == assistant.IntentGenerateTemplate:
		if _, ok := m.sess.PendingTemplate(); ok {
			m.statusMsg = `Template ready. Type "apply" to add it to the ledger.`
		}
	case msg.reply.Intent == assistant.IntentApplyTemplate && msg.reply.Message.Content != assistant.NoTemplateMessage:
		m.statusMsg = "Ledger updated"
	}

	m.updateViewport()
	return m, cmd
}

// updateViewport re-renders the conversation and scrolls to the newest line.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
