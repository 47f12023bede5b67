// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// report.go - Budget report and template catalog commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/report"
	"github.com/jeranaias/reelbudget/internal/util"
)

// =============================================================================
// REPORT
// =============================================================================

func newReportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show budget breakdown, top variances and monthly totals",
		Example: `  reelbudget report --file budget.csv
  reelbudget report --file budget.csv --format markdown > report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown or json")
	return cmd
}

func runReport(cmd *cobra.Command, format string) error {
	sess, _, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	st := sess.Ledger().State()
	out := cmd.OutOrStdout()

	if flagJSON {
		return outputJSON(out, "report", report.Build(st))
	}

	switch strings.ToLower(format) {
	case "text", "":
		writeTextReport(out, sess.Project().Name, st)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Build(st))
	case "markdown", "md":
		opts := export.DefaultOptions()
		opts.ProjectName = sess.Project().Name
		data, err := export.NewMarkdownExporter(opts).Export(st)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported report format: %s (use text, markdown or json)", format)
	}
}

func writeTextReport(w io.Writer, project string, st ledger.State) {
	r := report.Build(st)

	fmt.Fprintln(w, RenderConditional(TitleStyle, project+" Budget Report"))
	fmt.Fprintln(w, RenderSeparator(50))
	writeSummary(w, r.Summary)
	fmt.Fprintln(w)

	if len(r.Categories) > 0 {
		rows := make([][]string, 0, len(r.Categories))
		for _, c := range r.Categories {
			rows = append(rows, []string{
				c.Category,
				money.Format(c.Budget),
				money.Format(c.Actual),
				money.Format(c.Variance),
				money.Percent(c.Share),
			})
		}
		fmt.Fprint(w, Table{
			Title:   "Categories",
			Headers: []string{"Category", "Budget", "Actual", "Variance", "Share"},
			Rows:    rows,
		}.Render())
		fmt.Fprintln(w)
	}

	if len(r.TopVariances) > 0 {
		rows := make([][]string, 0, len(r.TopVariances))
		for _, v := range r.TopVariances {
			status := "under"
			if v.Over {
				status = "over"
			}
			rows = append(rows, []string{
				util.TruncateWidth(v.Item.Description, 32),
				v.Item.Category,
				money.Format(v.Item.Variance),
				status,
			})
		}
		fmt.Fprint(w, Table{
			Title:     "Top Variances",
			Headers:   []string{"Item", "Category", "Variance", "Status"},
			Rows:      rows,
			LeftAlign: []int{1},
		}.Render())
		fmt.Fprintln(w)
	}

	if len(r.Monthly) > 0 {
		rows := make([][]string, 0, len(r.Monthly))
		for _, m := range r.Monthly {
			rows = append(rows, []string{m.Month, money.Format(m.Budget), money.Format(m.Actual)})
		}
		fmt.Fprint(w, Table{
			Title:   "Monthly",
			Headers: []string{"Month", "Budget", "Actual"},
			Rows:    rows,
		}.Render())
	}
}

// =============================================================================
// TEMPLATES
// =============================================================================

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [TYPE]",
		Short: "List budget templates or show one",
		Example: `  reelbudget templates
  reelbudget templates short-film`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		t, ok := findTemplate(args[0])
		if !ok {
			return &NotFoundError{Resource: "template", ID: args[0]}
		}
		if flagJSON {
			return outputJSON(out, "templates", t)
		}
		fmt.Fprintln(out, RenderMarkdown(assistant.RenderTemplate(t), true))
		return nil
	}

	all := assistant.Templates()
	if flagJSON {
		return outputJSON(out, "templates", all)
	}
	rows := make([][]string, 0, len(all))
	for _, t := range all {
		rows = append(rows, []string{
			string(t.Type),
			t.Name,
			fmt.Sprintf("%d", len(t.Items)),
			money.Format(t.Total()),
		})
	}
	fmt.Fprint(out, Table{
		Headers:   []string{"Type", "Name", "Items", "Total"},
		Rows:      rows,
		LeftAlign: []int{1},
	}.Render())
	return nil
}

func findTemplate(name string) (assistant.Template, bool) {
	for _, t := range assistant.Templates() {
		if strings.EqualFold(string(t.Type), name) {
			return t, true
		}
	}
	return assistant.Template{}, false
}
