// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/jeranaias/reelbudget/internal/ledger"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the line items as a JSON array. The output can be
// read back with ReadJSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the ledger items to JSON.
func (e *JSONExporter) Export(st ledger.State) ([]byte, error) {
	items := st.Items
	if items == nil {
		items = []ledger.Item{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
