// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date used for item dates.
const DateLayout = "2006-01-02"

// Item is a single budget line.
type Item struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`
	Notes       string          `json:"notes"`
	Date        string          `json:"date"`
}

// NewID returns a fresh opaque item identifier.
func NewID() string {
	return uuid.New().String()
}

// Normalized returns a copy of the item with Variance set to Actual - Amount.
func (i Item) Normalized() Item {
	i.Variance = i.Actual.Sub(i.Amount)
	return i
}

// IsOverBudget reports whether more was spent than budgeted.
func (i Item) IsOverBudget() bool {
	return i.Actual.Sub(i.Amount).IsPositive()
}
