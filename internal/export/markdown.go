// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/report"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a budget report: totals, the category breakdown,
// the largest variances and the monthly view.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders the report for st.
func (e *MarkdownExporter) Export(st ledger.State) ([]byte, error) {
	r := report.Build(st)
	now := e.options.now()

	title := e.options.ProjectName
	if strings.TrimSpace(title) == "" {
		title = "Budget"
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(title)))
		sb.WriteString(fmt.Sprintf("items: %d\n", r.Summary.ItemCount))
		sb.WriteString(fmt.Sprintf("exported: %s\n", now.Format(time.RFC3339)))
		sb.WriteString("generator: reelbudget\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s Budget Report\n\n", escapeMarkdown(title)))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Budget**: %s\n", money.Format(r.Summary.TotalBudget)))
	sb.WriteString(fmt.Sprintf("- **Total Spent**: %s\n", money.Format(r.Summary.TotalActual)))
	sb.WriteString(fmt.Sprintf("- **Variance**: %s\n", money.Format(r.Summary.Variance)))
	sb.WriteString(fmt.Sprintf("- **Budget Utilization**: %s\n", money.Percent(r.Summary.Utilization)))
	sb.WriteString(fmt.Sprintf("- **Line Items**: %d\n\n", r.Summary.ItemCount))

	// Categories
	sb.WriteString("## Category Breakdown\n\n")
	if len(r.Categories) == 0 {
		sb.WriteString("_No budgeted categories._\n\n")
	} else {
		sb.WriteString("| Category | Budget | Actual | Variance | Share |\n")
		sb.WriteString("|---|---:|---:|---:|---:|\n")
		for _, row := range r.Categories {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				escapeTableCell(row.Category),
				money.Format(row.Budget),
				money.Format(row.Actual),
				money.Format(row.Variance),
				money.Percent(row.Share)))
		}
		sb.WriteString("\n")
	}

	// Variances
	sb.WriteString("## Top Variances\n\n")
	if len(r.TopVariances) == 0 {
		sb.WriteString("_No variances._\n\n")
	} else {
		sb.WriteString("| Item | Category | Variance | Status |\n")
		sb.WriteString("|---|---|---:|---|\n")
		for _, row := range r.TopVariances {
			status := "Under"
			if row.Over {
				status = "Over"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				escapeTableCell(row.Item.Description),
				escapeTableCell(row.Item.Category+" > "+row.Item.Subcategory),
				money.Format(row.Item.Variance),
				status))
		}
		sb.WriteString("\n")
	}

	// Monthly
	if len(r.Monthly) > 0 {
		sb.WriteString("## Monthly\n\n")
		sb.WriteString("| Month | Budget | Actual |\n")
		sb.WriteString("|---|---:|---:|\n")
		for _, row := range r.Monthly {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				row.Month, money.Format(row.Budget), money.Format(row.Actual)))
		}
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from reelbudget on %s*\n", formatTimestamp(now)))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeTableCell keeps user text from breaking a table row.
func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	// Quote if contains special characters (including backslash)
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
