// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"strings"

	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/report"
)

// Analyze renders the budget analysis report for a ledger snapshot.
func Analyze(st ledger.State) string {
	sum := report.Summarize(st)
	var b strings.Builder

	status := "Under Budget"
	if sum.OverBudget() {
		status = "Over Budget"
	}

	b.WriteString("📊 **Budget Analysis Report**\n\n")
	fmt.Fprintf(&b, "**Total Budget:** %s\n", money.Format(sum.TotalBudget))
	fmt.Fprintf(&b, "**Total Spent:** %s\n", money.Format(sum.TotalActual))
	fmt.Fprintf(&b, "**Variance:** %s (%s)\n", money.Format(sum.Variance.Abs()), status)
	fmt.Fprintf(&b, "**Utilization:** %s\n\n", money.Percent(sum.Utilization))

	switch {
	case sum.Variance.IsPositive():
		b.WriteString("⚠️ **Budget Overrun Alert**\n")
		fmt.Fprintf(&b, "Your project is over budget by %s. Consider:\n", money.Format(sum.Variance))
		b.WriteString("• Reviewing high-variance items\n")
		b.WriteString("• Adjusting spending in remaining categories\n")
		b.WriteString("• Reallocating funds from under-budget areas\n\n")
	case sum.Variance.IsNegative():
		b.WriteString("✅ **Budget Status: Good**\n")
		fmt.Fprintf(&b, "You're under budget by %s. You may have room for:\n", money.Format(sum.Variance.Abs()))
		b.WriteString("• Additional expenses\n")
		b.WriteString("• Quality improvements\n")
		b.WriteString("• Contingency allocation\n\n")
	}

	rows := report.CategoryBreakdown(st)
	if len(rows) > 0 {
		b.WriteString("**Category Breakdown:**\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "• %s: %s budget, %s spent\n", r.Category, money.Format(r.Budget), money.Format(r.Actual))
		}
	}

	return b.String()
}
