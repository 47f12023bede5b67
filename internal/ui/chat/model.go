// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/reelbudget/internal/session"
	"github.com/jeranaias/reelbudget/internal/ui/styles"
)

// probeTimeout bounds the startup Ollama check.
const probeTimeout = 5 * time.Second

// Options configures a chat Model.
type Options struct {
	// Markdown renders assistant replies with glamour.
	Markdown bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	sess  *session.Session
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	width  int
	height int
	ready  bool

	busy      bool
	statusMsg string
	isError   bool

	markdown bool
	renderer *glamour.TermRenderer
	rendered map[string]string
}

// New creates the chat model for sess.
func New(sess *session.Session, theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your budget, or: create a budget for a feature film"
	ti.CharLimit = 4096
	ti.Width = 70
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Spinner{
			Frames: []string{"|", "/", "-", "\\"},
			FPS:    time.Second / 10,
		}),
		spinner.WithStyle(theme.Thinking),
	)

	return Model{
		sess:     sess,
		theme:    theme,
		keys:     DefaultKeyMap(),
		viewport: viewport.New(theme.Width, theme.Height),
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		width:    theme.Width,
		height:   theme.Height,
		markdown: opts.Markdown,
		rendered: make(map[string]string),
	}
}

// Init starts the cursor blink and, when a model backend is configured,
// probes it once.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if st := m.sess.GetStatus(); !st.Offline && m.sess.Client() != nil {
		cmds = append(cmds, m.checkOllama())
	}
	return tea.Batch(cmds...)
}

// Busy reports whether a reply is pending.
func (m Model) Busy() bool {
	return m.busy
}

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs the dispatcher off the update goroutine.
func sendCmd(sess *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := sess.Send(context.Background(), text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) checkOllama() tea.Cmd {
	client := m.sess.Client()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		err := client.CheckRunning(ctx)
		return ollamaStatusMsg{running: err == nil, err: err}
	}
}

// markdownRenderer returns a glamour renderer for the current width.
func (m *Model) markdownRenderer() *glamour.TermRenderer {
	if m.renderer != nil {
		return m.renderer
	}
	style := "light"
	if m.theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(m.width-6, 20)),
	)
	if err != nil {
		m.markdown = false
		return nil
	}
	m.renderer = r
	return r
}
