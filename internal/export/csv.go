// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/csv"

	"github.com/jeranaias/reelbudget/internal/ledger"
)

// =============================================================================
// CSV EXPORTER
// =============================================================================

// CSVHeader is the column order written by CSVExporter and expected by
// ReadCSV. Variance is derived and never stored.
var CSVHeader = []string{"id", "category", "subcategory", "description", "amount", "actual", "notes", "date"}

// CSVExporter writes one row per line item.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export converts the ledger items to CSV.
func (e *CSVExporter) Export(st ledger.State) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, it := range st.Items {
		record := []string{
			it.ID,
			it.Category,
			it.Subcategory,
			it.Description,
			it.Amount.String(),
			it.Actual.String(),
			it.Notes,
			it.Date,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string {
	return ".csv"
}

// MimeType returns the MIME type for CSV.
func (e *CSVExporter) MimeType() string {
	return "text/csv"
}
