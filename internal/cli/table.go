// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// table.go - Bordered text tables for CLI listings.
package cli

import (
	"io"
	"strings"

	"github.com/jeranaias/reelbudget/internal/util"
)

// Table is a bordered text table. The first column is left-aligned and the
// rest are right-aligned, which suits label + amount listings.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string

	// LeftAlign lists extra columns to left-align.
	LeftAlign []int
}

// separatorRow inserts a horizontal rule when used as a row.
var separatorRow = []string{"---"}

// Render renders the table. Column widths use display width so emoji and
// East Asian text line up.
func (t Table) Render() string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = util.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < numCols && i < len(row); i++ {
			if w := util.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	left := map[int]bool{0: true}
	for _, i := range t.LeftAlign {
		left[i] = true
	}

	rule := func(l, mid, r string) string {
		var b strings.Builder
		b.WriteString(l)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(r)
		return RenderConditional(DimStyle, b.String())
	}
	bar := RenderConditional(DimStyle, "│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderConditional(HeaderStyle, t.Title))
		b.WriteString("\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString("\n")

	if len(t.Headers) > 0 {
		b.WriteString(bar)
		for i, h := range t.Headers {
			b.WriteString(RenderConditional(HeaderStyle, " "+util.PadRight(h, widths[i])+" "))
			b.WriteString(bar)
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
		b.WriteString("\n")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == separatorRow[0] {
			b.WriteString(rule("├", "┼", "┤"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(bar)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if left[i] {
				cell = util.PadRight(cell, widths[i])
			} else {
				cell = util.PadLeft(cell, widths[i])
			}
			b.WriteString(" " + cell + " ")
			b.WriteString(bar)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	b.WriteString("\n")
	return b.String()
}

// WriteTo writes the rendered table to w.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Render())
	return int64(n), err
}
