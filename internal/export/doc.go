// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export moves budget line items in and out of files.
//
// # Key Types
//
//   - Exporter: JSON, CSV and Markdown report writers
//   - Options: output directory, project name and metadata switches
//   - Watcher: re-imports a JSON or CSV file whenever it changes
//
// # Supported Formats
//
//   - JSON: array of line items, round-trips through ReadJSON
//   - CSV: id,category,subcategory,description,amount,actual,notes,date
//   - Markdown: totals, category breakdown, top variances, monthly view
//
// # Usage
//
// Export the current ledger:
//
//	exp, _ := export.New(export.FormatCSV, nil)
//	err := export.WriteFile(store.State(), exp, "budget.csv")
//
// Keep the ledger in sync with a file:
//
//	w, err := export.NewWatcher("budget.csv", 0, store.ReplaceAll)
//	go w.Run(ctx)
package export
