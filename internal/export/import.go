// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
)

// =============================================================================
// IMPORT
// =============================================================================

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must appear in an imported CSV header.
var requiredColumns = []string{"category", "subcategory", "description", "amount"}

// Read parses items in the given format. Only JSON and CSV can be read.
func Read(r io.Reader, format Format) ([]ledger.Item, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("cannot import %s", format)
	}
}

// ReadFile parses the items in path, choosing the format by extension.
func ReadFile(path string) ([]ledger.Item, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// ReadJSON parses a JSON array of items. Missing IDs are generated and
// variance is recomputed.
func ReadJSON(r io.Reader) ([]ledger.Item, error) {
	var items []ledger.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return finish(items), nil
}

// ReadCSV parses a CSV file with a header row. Columns are matched by name,
// in any order; id, actual, notes and date are optional.
func ReadCSV(r io.Reader) ([]ledger.Item, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}

	// Find columns from header
	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	items := make([]ledger.Item, 0, len(records)-1)
	for n, record := range records[1:] {
		line := n + 2
		amount, err := money.Parse(field(record, "amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: amount: %w", line, err)
		}
		actual, err := money.Parse(field(record, "actual"))
		if err != nil {
			return nil, fmt.Errorf("line %d: actual: %w", line, err)
		}
		items = append(items, ledger.Item{
			ID:          field(record, "id"),
			Category:    field(record, "category"),
			Subcategory: field(record, "subcategory"),
			Description: field(record, "description"),
			Amount:      amount,
			Actual:      actual,
			Notes:       field(record, "notes"),
			Date:        field(record, "date"),
		})
	}
	return finish(items), nil
}

func finish(items []ledger.Item) []ledger.Item {
	if items == nil {
		return []ledger.Item{}
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = ledger.NewID()
		}
		items[i] = items[i].Normalized()
	}
	return items
}
