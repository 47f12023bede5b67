// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the in-memory production budget.
//
// A Store owns the budget line items and the category taxonomy. Every
// write recomputes the derived totals from scratch and re-derives each
// item's variance as actual minus amount, so readers always see a
// consistent snapshot.
//
// # Key Types
//
//   - Item: one budget line (category, subcategory, amounts, notes, date)
//   - State: immutable snapshot of items, totals and taxonomy
//   - Store: mutex-guarded owner of the current State
//   - Entry: unvalidated form input that becomes an Item
//
// # Usage
//
//	store := ledger.NewStore()
//	store.AddItem(ledger.Item{
//	    ID:          ledger.NewID(),
//	    Category:    "Production",
//	    Subcategory: "Equipment",
//	    Description: "Camera Package",
//	    Amount:      decimal.NewFromInt(75000),
//	})
//	fmt.Println(store.State().TotalBudget)
package ledger
