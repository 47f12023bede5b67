// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for reelbudget CLI.
//
// Command: ask [question]
// Short:   Ask the budgeting assistant a single question
//
// Examples:
//   reelbudget ask "create a short film budget"
//   reelbudget ask --file budget.csv "analyze my spending"
//   reelbudget ask --json "how much should I set aside for insurance?"
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/model"
)

// AskResult is the --json payload for ask.
type AskResult struct {
	Question string        `json:"question"`
	Intent   string        `json:"intent"`
	Reply    model.Message `json:"reply"`
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask the budgeting assistant a single question",
		Example: `  reelbudget ask "create a feature film budget"
  reelbudget ask --file budget.csv "analyze my spending"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return ErrMissingArgument("QUESTION", `reelbudget ask "your question"`)
	}

	sess, cfg, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reply, err := sess.Send(ctx, question)
	if err != nil {
		return NewCommandError("ask", "send", "assistant did not answer", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "ask", AskResult{
			Question: question,
			Intent:   reply.Intent.String(),
			Reply:    reply.Message,
		})
	}
	printReply(out, reply, cfg.UI.Markdown)
	return nil
}

// printReply writes an assistant reply, rendered as markdown when the
// terminal supports it.
func printReply(w io.Writer, reply assistant.Reply, markdown bool) {
	fmt.Fprintln(w, RenderMarkdown(reply.Message.Content, markdown))
	if !flagQuiet && reply.Intent == assistant.IntentGenerateTemplate {
		fmt.Fprintln(w, RenderConditional(DimStyle, "(template ready; say \"apply\" to add it)"))
	}
}
