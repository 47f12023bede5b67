// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/reelbudget/internal/model"
	"github.com/jeranaias/reelbudget/internal/money"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderInput(),
		m.help.View(m.keys),
	)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	st := m.sess.GetStatus()
	ledger := m.sess.Ledger().State()

	parts := []string{m.theme.HeaderTitle.Render("reelbudget")}
	if st.Offline {
		parts = append(parts, m.theme.OfflineTag.Render("[OFFLINE]"))
	} else if st.Model != "" {
		parts = append(parts, m.theme.HeaderInfo.Render(st.Model))
	}

	totals := fmt.Sprintf("%d items | budget %s | actual %s",
		st.Items, money.Format(ledger.TotalBudget), money.Format(ledger.TotalActual))
	variance := m.theme.UnderBudget
	if ledger.TotalVariance.IsPositive() {
		variance = m.theme.OverBudget
	}
	parts = append(parts,
		m.theme.HeaderInfo.Render(totals),
		variance.Render("variance "+money.Format(ledger.TotalVariance)))

	return m.theme.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// MESSAGES
// =============================================================================

func (m *Model) renderMessages() string {
	var b strings.Builder
	for _, msg := range m.sess.Conversation().Messages() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(m.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName()))
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Thinking.Render(" thinking..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message) string {
	label := m.theme.UserLabel
	body := m.theme.UserText
	if msg.Role == model.RoleAssistant {
		label = m.theme.AssistantLabel
		body = m.theme.AssistantText
	}

	header := label.Render(msg.Role.DisplayName()) + " " + m.theme.Timestamp.Render(msg.FormatTime())
	return header + "\n" + m.renderBody(msg, body)
}

// renderBody renders assistant replies as markdown when enabled, caching by
// message ID since messages never change once logged.
func (m *Model) renderBody(msg model.Message, style lipgloss.Style) string {
	if m.markdown && msg.Role == model.RoleAssistant {
		if out, ok := m.rendered[msg.ID]; ok {
			return out
		}
		if r := m.markdownRenderer(); r != nil {
			if out, err := r.Render(msg.Content); err == nil {
				m.rendered[msg.ID] = out
				return out
			}
		}
	}
	return style.Width(max(m.width-2, 10)).Render(msg.Content) + "\n"
}

// =============================================================================
// STATUS AND INPUT
// =============================================================================

func (m Model) renderStatus() string {
	switch {
	case m.busy:
		return m.theme.StatusBar.Render(m.spinner.View() + " Waiting for the assistant...")
	case m.statusMsg != "" && m.isError:
		return m.theme.StatusBar.Render(m.theme.ErrorText.Render(m.statusMsg))
	case m.statusMsg != "":
		return m.theme.StatusBar.Render(m.statusMsg)
	default:
		return m.theme.StatusBar.Render(fmt.Sprintf("%d messages", m.sess.Conversation().Len()))
	}
}

func (m Model) renderInput() string {
	return m.theme.InputBorder.Width(max(m.width-2, 10)).Render(m.input.View())
}
