// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/reelbudget/internal/ledger"
)

func sampleState() ledger.State {
	s := ledger.NewStore()
	s.AddItem(ledger.Item{
		ID: "a", Category: "Above the Line", Subcategory: "Director", Description: "Director Fee",
		Amount: decimal.NewFromInt(150000), Actual: decimal.NewFromInt(160000), Date: "2024-01-15",
		Notes: "Includes prep, weeks 1-4",
	}.Normalized())
	s.AddItem(ledger.Item{
		ID: "b", Category: "Production", Subcategory: "Equipment", Description: "Camera | Lenses",
		Amount: decimal.RequireFromString("75000.50"), Actual: decimal.Zero, Date: "2024-02-01",
	}.Normalized())
	return s.State()
}

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC) }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".CSV", FormatCSV, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	st := sampleState()
	data, err := NewCSVExporter().Export(st)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "id,category,subcategory,description,amount,actual,notes,date", lines[0])
	assert.Len(t, lines, 3)

	items, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Includes prep, weeks 1-4", items[0].Notes)
	assert.True(t, items[0].Variance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, items[1].Amount.Equal(decimal.RequireFromString("75000.50")))
}

func TestJSON_RoundTrip(t *testing.T) {
	st := sampleState()
	data, err := NewJSONExporter().Export(st)
	require.NoError(t, err)

	items, err := ReadJSON(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Camera | Lenses", items[1].Description)
}

func TestJSON_EmptyLedger(t *testing.T) {
	data, err := NewJSONExporter().Export(ledger.NewStore().State())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestReadJSON_RecomputesVarianceAndIDs(t *testing.T) {
	in := `[{"category":"Other","subcategory":"Legal","description":"Clearances","amount":1000,"actual":"400","variance":"999"}]`
	items, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.True(t, items[0].Variance.Equal(decimal.NewFromInt(-600)))
}

func TestReadCSV_HeaderByName(t *testing.T) {
	in := "description,amount,category,subcategory\nFestival Submissions,\"$1,500\",Other,Marketing\n"
	items, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Other", items[0].Category)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, items[0].Actual.IsZero())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrMissingColumn},
		{"no amount column", "category,subcategory,description\nA,B,C\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.True(t, errors.Is(err, tt.want), "err = %v", err)
		})
	}

	_, err := ReadCSV(strings.NewReader("category,subcategory,description,amount\nA,B,C,lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMarkdown_Report(t *testing.T) {
	opts := &Options{ProjectName: "Night Shoot", IncludeMetadata: true, Now: fixedNow}
	data, err := NewMarkdownExporter(opts).Export(sampleState())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "title: Night Shoot\n")
	assert.Contains(t, out, "# Night Shoot Budget Report")
	assert.Contains(t, out, "- **Total Budget**: $225,000.5\n")
	assert.Contains(t, out, "| Above the Line | $150,000 | $160,000 | $10,000 |")
	assert.Contains(t, out, `Camera \| Lenses`)
	assert.Contains(t, out, "| Jan 2024 | $150,000 | $160,000 |")
	assert.Contains(t, out, "*Exported from reelbudget on 2024-06-01 10:30:00*")
}

func TestMarkdown_EmptyLedger(t *testing.T) {
	data, err := NewMarkdownExporter(&Options{Now: fixedNow}).Export(ledger.NewStore().State())
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "---\ntitle")
	assert.Contains(t, out, "_No budgeted categories._")
	assert.Contains(t, out, "_No variances._")
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{OutputDir: dir, ProjectName: "Feature Film: Draft", Now: fixedNow}

	path, err := ExportToFile(sampleState(), NewCSVExporter(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Feature_Film-_Draft_20240601_103000.csv"), path)

	items, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "budget", sanitizeFilename("   "))
	assert.Equal(t, "a-b_c", sanitizeFilename("a/b c"))
	assert.Len(t, []rune(sanitizeFilename(strings.Repeat("x", 80))), 50)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.csv")
	require.NoError(t, os.WriteFile(path, []byte("category,subcategory,description,amount\nOther,Legal,Clearances,100\n"), 0o644))

	var mu sync.Mutex
	var got []ledger.Item
	w, err := NewWatcher(path, 20*time.Millisecond, func(items []ledger.Item) {
		mu.Lock()
		got = items
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Reload())
	assert.Equal(t, int64(1), w.Reloads())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("category,subcategory,description,amount\nOther,Legal,Clearances,100\nOther,Marketing,Posters,250\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewWatcher_RejectsUnknownExtension(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "budget.xlsx"), 0, func([]ledger.Item) {})
	assert.Error(t, err)
}
