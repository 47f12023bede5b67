// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for reelbudget CLI.
//
// Command: chat
// Short:   Start an interactive budgeting chat
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /status, /s         Show session statistics
//   /history            Show conversation history
//   /budget, /b         Show budget totals
//   /template, /t       Show the template waiting to be applied
//   /save FILE          Export the ledger to FILE (.csv, .json or .md)
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/report"
	"github.com/jeranaias/reelbudget/internal/session"
	"github.com/jeranaias/reelbudget/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader reads one line of user input.
type lineReader interface {
	ReadInput(prompt string) (string, error)
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	_ = c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive budgeting chat",
		Example: `  reelbudget chat
  reelbudget chat --offline
  reelbudget chat --file budget.csv --model mistral`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	sess, cfg, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	input := NewChatCLI()
	defer input.Close()

	r := &repl{
		sess:     sess,
		in:       input,
		out:      cmd.OutOrStdout(),
		markdown: cfg.UI.Markdown,
	}
	return r.run(cmd.Context())
}

// repl is the chat loop, separated from liner so it can be driven by tests.
type repl struct {
	sess     *session.Session
	in       lineReader
	out      io.Writer
	markdown bool
}

func (r *repl) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !flagQuiet {
		r.printWelcome()
	}

	for {
		line, err := r.in.ReadInput(RenderConditional(promptStyle, "reelbudget> "))
		if err != nil {
			fmt.Fprintln(r.out)
			r.printExitSummary()
			if isAbort(err) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if !r.handleSlashCommand(line) {
				r.printExitSummary()
				return nil
			}
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			r.printExitSummary()
			return nil
		}

		reply, err := r.sess.Send(ctx, line)
		if err != nil {
			fmt.Fprintf(r.out, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
			continue
		}
		fmt.Fprintln(r.out)
		printReply(r.out, reply, r.markdown)
		fmt.Fprintln(r.out)
	}
}

// handleSlashCommand runs a /command and reports whether the loop continues.
func (r *repl) handleSlashCommand(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/q", "/exit":
		return false
	case "/help", "/h", "/?":
		r.printHelp()
	case "/status", "/s":
		r.printStatus()
	case "/history":
		r.printHistory()
	case "/budget", "/b":
		writeSummary(r.out, report.Summarize(r.sess.Ledger().State()))
	case "/template", "/t":
		t, ok := r.sess.PendingTemplate()
		if !ok {
			fmt.Fprintln(r.out, assistant.NoTemplateMessage)
			break
		}
		fmt.Fprintln(r.out, RenderMarkdown(assistant.RenderTemplate(t), r.markdown))
	case "/save":
		if len(fields) < 2 {
			fmt.Fprintln(r.out, RenderConditional(WarningStyle, "Usage: /save FILE"))
			break
		}
		if err := saveLedger(r.sess, fields[1]); err != nil {
			fmt.Fprintf(r.out, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
			break
		}
		fmt.Fprintf(r.out, "Saved %d items to %s\n", r.sess.Ledger().Len(), fields[1])
	default:
		fmt.Fprintf(r.out, "Unknown command %s. Type /help for commands.\n", fields[0])
	}
	return true
}

// saveLedger writes the session ledger to path in the format its extension
// names.
func saveLedger(sess *session.Session, path string) error {
	format, err := export.FormatForPath(path)
	if err != nil {
		return err
	}
	opts := export.DefaultOptions()
	opts.ProjectName = sess.Project().Name
	exp, err := export.New(format, opts)
	if err != nil {
		return err
	}
	return export.WriteFile(sess.Ledger().State(), exp, path)
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *repl) printWelcome() {
	fmt.Fprintln(r.out, RenderConditional(welcomeStyle, "reelbudget chat"))
	fmt.Fprintln(r.out, RenderMarkdown(r.firstMessage(), r.markdown))
	if offline.IsOfflineMode() {
		fmt.Fprintln(r.out, RenderConditional(WarningStyle, offline.StatusBadge()+" built-in replies only"))
	}
	fmt.Fprintln(r.out, RenderConditional(DimStyle, "Type /help for commands, /quit to exit."))
	fmt.Fprintln(r.out)
}

func (r *repl) firstMessage() string {
	msgs := r.sess.Conversation().Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0].Content
}

func (r *repl) printHelp() {
	cmds := [][2]string{
		{"/help, /h", "Show this help"},
		{"/status, /s", "Show session statistics"},
		{"/history", "Show conversation history"},
		{"/budget, /b", "Show budget totals"},
		{"/template, /t", "Show the template waiting to be applied"},
		{"/save FILE", "Export the ledger (.csv, .json, .md)"},
		{"/quit, /q", "Exit chat"},
	}
	fmt.Fprintln(r.out, RenderConditional(SectionStyle, "Commands"))
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s %s\n", RenderConditional(commandStyle, fmt.Sprintf("%-16s", c[0])), c[1])
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Try: \"create a feature film budget\", \"apply it\", \"analyze my budget\".")
}

func (r *repl) printStatus() {
	st := r.sess.GetStatus()
	fmt.Fprintf(r.out, "%s%s\n", RenderLabel("Session:"), st.SessionID)
	fmt.Fprintf(r.out, "%s%d\n", RenderLabel("Messages:"), st.Messages)
	fmt.Fprintf(r.out, "%s%d\n", RenderLabel("Budget items:"), st.Items)
	fmt.Fprintf(r.out, "%s%s\n", RenderLabel("Model:"), st.Model)
	fmt.Fprintf(r.out, "%s%v\n", RenderLabel("Offline:"), st.Offline)
	fmt.Fprintf(r.out, "%s%v\n", RenderLabel("Template pending:"), st.HasTemplate)
}

func (r *repl) printHistory() {
	for _, m := range r.sess.Conversation().Messages() {
		fmt.Fprintf(r.out, "%s %s: %s\n",
			RenderConditional(DimStyle, m.FormatTime()),
			m.Role.DisplayName(),
			m.Preview(70))
	}
}

func (r *repl) printExitSummary() {
	if flagQuiet {
		return
	}
	sum := report.Summarize(r.sess.Ledger().State())
	fmt.Fprintf(r.out, "%s %d messages, %d budget items, %s budgeted.\n",
		RenderConditional(TitleStyle, "Session ended:"),
		r.sess.Conversation().Len(),
		sum.ItemCount,
		money.Format(sum.TotalBudget))
}

// isAbort reports whether err is Ctrl+C or Ctrl+D at the prompt.
func isAbort(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}
