// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// budget.go - Ledger commands for reelbudget CLI.
//
// Command: budget [list|add|import|export]
//
// The ledger lives in memory; --file names a CSV or JSON file that is loaded
// first and, for add and import, written back afterwards.
//
// Examples:
//   reelbudget budget list --file budget.csv
//   reelbudget budget add --file budget.csv --category Production \
//       --subcategory Equipment --description "Camera package" --amount 4000
//   reelbudget budget import old.json --file budget.csv
//   reelbudget budget export --file budget.csv --format markdown --out reports/
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/report"
	"github.com/jeranaias/reelbudget/internal/session"
	"github.com/jeranaias/reelbudget/internal/util"
)

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "List, add, import and export budget lines",
		Args:  cobra.NoArgs,
		RunE:  runBudgetList,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List budget lines with totals",
			Args:  cobra.NoArgs,
			RunE:  runBudgetList,
		},
		newBudgetAddCmd(),
		&cobra.Command{
			Use:   "import SOURCE",
			Short: "Merge lines from a CSV or JSON file into --file",
			Args:  cobra.ExactArgs(1),
			RunE:  runBudgetImport,
		},
		newBudgetExportCmd(),
	)
	return cmd
}

// =============================================================================
// LIST
// =============================================================================

// BudgetListing is the --json payload for budget list.
type BudgetListing struct {
	Items   []ledger.Item  `json:"items"`
	Summary report.Summary `json:"summary"`
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
	sess, _, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	st := sess.Ledger().State()
	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "budget list", BudgetListing{Items: st.Items, Summary: report.Summarize(st)})
	}

	if len(st.Items) == 0 {
		fmt.Fprintln(out, "No budget items. Add one with 'reelbudget budget add' or load a ledger with --file.")
		return nil
	}
	writeItemTable(out, st.Items)
	writeSummary(out, report.Summarize(st))
	return nil
}

func writeItemTable(w io.Writer, items []ledger.Item) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Category,
			it.Subcategory,
			util.TruncateWidth(it.Description, 32),
			money.Format(it.Amount),
			money.Format(it.Actual),
			money.Format(it.Variance),
			it.Date,
		})
	}
	fmt.Fprint(w, Table{
		Headers:   []string{"Category", "Subcategory", "Description", "Budget", "Actual", "Variance", "Date"},
		Rows:      rows,
		LeftAlign: []int{1, 2, 6},
	}.Render())
}

// writeSummary prints the headline totals.
func writeSummary(w io.Writer, s report.Summary) {
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Total budget:"), money.Format(s.TotalBudget))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Total actual:"), money.Format(s.TotalActual))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Variance:"), RenderVariance(s.Variance))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Utilization:"), money.Percent(s.Utilization))
	fmt.Fprintf(w, "%s%d\n", RenderLabel("Items:"), s.ItemCount)
}

// =============================================================================
// ADD
// =============================================================================

type addFlags struct {
	category    string
	subcategory string
	description string
	amount      string
	actual      string
	notes       string
	date        string
}

func newBudgetAddCmd() *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a budget line and save it to --file",
		Example: `  reelbudget budget add --file budget.csv --category Production \
      --subcategory Equipment --description "Camera package" --amount 4000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBudgetAdd(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.category, "category", "", "Category (required)")
	fl.StringVar(&f.subcategory, "subcategory", "", "Subcategory (required)")
	fl.StringVar(&f.description, "description", "", "Description (required)")
	fl.StringVar(&f.amount, "amount", "0", "Budgeted amount")
	fl.StringVar(&f.actual, "actual", "0", "Actual spend")
	fl.StringVar(&f.notes, "notes", "", "Notes")
	fl.StringVar(&f.date, "date", "", "Date as YYYY-MM-DD (default today)")
	return cmd
}

func (f addFlags) entry() (ledger.Entry, error) {
	amount, err := money.Parse(f.amount)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("--amount: %w", err)
	}
	actual, err := money.Parse(f.actual)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("--actual: %w", err)
	}
	return ledger.Entry{
		Category:    f.category,
		Subcategory: f.subcategory,
		Description: f.description,
		Amount:      amount,
		Actual:      actual,
		Notes:       f.notes,
		Date:        f.date,
	}, nil
}

func runBudgetAdd(cmd *cobra.Command, f addFlags) error {
	if flagLedgerFile == "" {
		return ErrMissingArgument("--file", "reelbudget budget add --file budget.csv ...")
	}
	e, err := f.entry()
	if err != nil {
		return err
	}

	sess, _, cleanup, err := openSession(openOptions{allowMissingLedger: true})
	if err != nil {
		return err
	}
	defer cleanup()

	item, err := sess.AddEntry(e)
	if err != nil {
		return NewCommandError("budget", "add", "invalid entry", err)
	}
	if err := saveLedger(sess, flagLedgerFile); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "budget add", item)
	}
	fmt.Fprintf(out, "%s %s > %s: %s (%s)\n",
		RenderConditional(SuccessStyle, "Added"),
		item.Category, item.Subcategory, item.Description, money.Format(item.Amount))
	return nil
}

// =============================================================================
// IMPORT
// =============================================================================

// ImportResult is the --json payload for budget import.
type ImportResult struct {
	Source   string         `json:"source"`
	Imported int            `json:"imported"`
	Target   string         `json:"target,omitempty"`
	Summary  report.Summary `json:"summary"`
}

func runBudgetImport(cmd *cobra.Command, args []string) error {
	src := args[0]
	items, err := export.ReadFile(src)
	if err != nil {
		return NewCommandError("budget", "import", "could not read "+src, err)
	}

	sess, _, cleanup, err := openSession(openOptions{allowMissingLedger: true})
	if err != nil {
		return err
	}
	defer cleanup()

	merged := mergeItems(sess, items)
	if flagLedgerFile != "" {
		if err := saveLedger(sess, flagLedgerFile); err != nil {
			return err
		}
	}

	res := ImportResult{
		Source:   src,
		Imported: merged,
		Target:   flagLedgerFile,
		Summary:  report.Summarize(sess.Ledger().State()),
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "budget import", res)
	}
	fmt.Fprintf(out, "%s %d items from %s\n", RenderConditional(SuccessStyle, "Imported"), res.Imported, src)
	if res.Target != "" {
		fmt.Fprintf(out, "Saved ledger to %s\n", res.Target)
	}
	writeSummary(out, res.Summary)
	return nil
}

// mergeItems appends items to the session ledger and returns how many were
// added.
func mergeItems(sess *session.Session, items []ledger.Item) int {
	for _, it := range items {
		sess.Ledger().AddItem(it)
	}
	return len(items)
}

// =============================================================================
// EXPORT
// =============================================================================

func newBudgetExportCmd() *cobra.Command {
	var format, outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a timestamped file",
		Example: `  reelbudget budget export --file budget.csv --format markdown
  reelbudget budget export --file budget.json --format csv --out exports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBudgetExport(cmd, format, outDir)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: json, csv or markdown")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	return cmd
}

func runBudgetExport(cmd *cobra.Command, formatName, outDir string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	sess, _, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	opts := export.DefaultOptions()
	opts.OutputDir = outDir
	opts.ProjectName = sess.Project().Name
	exp, err := export.New(format, opts)
	if err != nil {
		return err
	}
	path, err := export.ExportToFile(sess.Ledger().State(), exp, opts)
	if err != nil {
		return NewCommandError("budget", "export", "write failed", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "budget export", map[string]string{"path": path, "format": string(format)})
	}
	fmt.Fprintf(out, "%s %s\n", RenderConditional(SuccessStyle, "Exported"), path)
	return nil
}
