// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report derives read-only budget summaries from a ledger snapshot.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeranaias/reelbudget/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the headline view of a budget.
type Summary struct {
	TotalBudget decimal.Decimal `json:"totalBudget"`
	TotalActual decimal.Decimal `json:"totalActual"`
	Variance    decimal.Decimal `json:"variance"`
	Utilization decimal.Decimal `json:"utilization"` // percent of budget spent
	ItemCount   int             `json:"itemCount"`
}

// OverBudget reports whether spending has reached or passed the budget.
func (s Summary) OverBudget() bool {
	return !s.Variance.IsNegative()
}

// Summarize computes totals and utilization. Utilization is zero when the
// budget is zero.
func Summarize(st ledger.State) Summary {
	return Summary{
		TotalBudget: st.TotalBudget,
		TotalActual: st.TotalActual,
		Variance:    st.TotalVariance,
		Utilization: percentOf(st.TotalActual, st.TotalBudget),
		ItemCount:   len(st.Items),
	}
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// =============================================================================
// CATEGORY BREAKDOWN
// =============================================================================

// CategoryRow is one category's totals.
type CategoryRow struct {
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
	Share    decimal.Decimal `json:"share"` // percent of the total budget
}

// CategoryBreakdown walks the taxonomy in order and returns one row per
// category whose summed budget is non-zero. A category listed twice in the
// taxonomy yields two rows.
func CategoryBreakdown(st ledger.State) []CategoryRow {
	rows := []CategoryRow{}
	for _, cat := range st.Categories {
		budget, actual := decimal.Zero, decimal.Zero
		for _, it := range st.Items {
			if it.Category == cat {
				budget = budget.Add(it.Amount)
				actual = actual.Add(it.Actual)
			}
		}
		if budget.IsZero() {
			continue
		}
		rows = append(rows, CategoryRow{
			Category: cat,
			Budget:   budget,
			Actual:   actual,
			Variance: actual.Sub(budget),
			Share:    percentOf(budget, st.TotalBudget),
		})
	}
	return rows
}

// OverBudgetCategories returns the breakdown rows that have overspent.
func OverBudgetCategories(st ledger.State) []CategoryRow {
	var over []CategoryRow
	for _, r := range CategoryBreakdown(st) {
		if r.Variance.IsPositive() {
			over = append(over, r)
		}
	}
	return over
}

// =============================================================================
// VARIANCES
// =============================================================================

// VarianceRow is one line item ranked by the size of its variance.
type VarianceRow struct {
	Item ledger.Item `json:"item"`
	Over bool        `json:"isOver"`
}

// TopVariances returns up to n items with a non-zero variance, largest
// absolute variance first. Ties keep ledger order. n <= 0 means no limit.
func TopVariances(st ledger.State, n int) []VarianceRow {
	rows := []VarianceRow{}
	for _, it := range st.Items {
		if it.Variance.IsZero() {
			continue
		}
		rows = append(rows, VarianceRow{Item: it, Over: it.Variance.IsPositive()})
	}
	slices.SortStableFunc(rows, func(a, b VarianceRow) int {
		return b.Item.Variance.Abs().Cmp(a.Item.Variance.Abs())
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// =============================================================================
// MONTHLY
// =============================================================================

// UnknownMonth labels items whose date cannot be parsed.
const UnknownMonth = "Unknown"

// MonthRow totals the items dated in one calendar month.
type MonthRow struct {
	Month  string          `json:"month"` // e.g. "Jan 2024"
	Budget decimal.Decimal `json:"budget"`
	Actual decimal.Decimal `json:"actual"`
}

// Monthly groups items by the month of their date, in order of first
// appearance in the ledger.
func Monthly(st ledger.State) []MonthRow {
	rows := []MonthRow{}
	index := map[string]int{}
	for _, it := range st.Items {
		label := UnknownMonth
		if t, err := time.Parse(ledger.DateLayout, it.Date); err == nil {
			label = t.Format("Jan 2006")
		}
		i, ok := index[label]
		if !ok {
			i = len(rows)
			index[label] = i
			rows = append(rows, MonthRow{Month: label, Budget: decimal.Zero, Actual: decimal.Zero})
		}
		rows[i].Budget = rows[i].Budget.Add(it.Amount)
		rows[i].Actual = rows[i].Actual.Add(it.Actual)
	}
	return rows
}

// =============================================================================
// FULL REPORT
// =============================================================================

// Report bundles every view for export and the HTTP API.
type Report struct {
	Summary      Summary       `json:"summary"`
	Categories   []CategoryRow `json:"categories"`
	TopVariances []VarianceRow `json:"topVariances"`
	Monthly      []MonthRow    `json:"monthly"`
}

// DefaultTopVariances is the number of variance rows shown in reports.
const DefaultTopVariances = 10

// Build assembles the full report for a snapshot.
func Build(st ledger.State) Report {
	return Report{
		Summary:      Summarize(st),
		Categories:   CategoryBreakdown(st),
		TopVariances: TopVariances(st, DefaultTopVariances),
		Monthly:      Monthly(st),
	}
}

// LargestCategory returns the breakdown row with the highest budget.
func LargestCategory(st ledger.State) (CategoryRow, bool) {
	rows := CategoryBreakdown(st)
	if len(rows) == 0 {
		return CategoryRow{}, false
	}
	return slices.MaxFunc(rows, func(a, b CategoryRow) int {
		return a.Budget.Cmp(b.Budget)
	}), true
}
