// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/session"
	"github.com/jeranaias/reelbudget/internal/util"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	os.Exit(m.Run())
}

// =============================================================================
// HELPERS
// =============================================================================

// setupHome points the config directory at a temp dir and returns it.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("REELBUDGET_HOME", home)
	t.Cleanup(func() { offline.SetOfflineMode(false) })
	return home
}

// execute runs a fresh command tree offline and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--offline", "--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// decodeJSON unwraps a --json response envelope.
func decodeJSON[T any](t *testing.T, out string) (T, string) {
	t.Helper()
	var resp struct {
		Success bool   `json:"success"`
		Data    T      `json:"data"`
		Command string `json:"command"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.True(t, resp.Success)
	return resp.Data, resp.Command
}

func addCameraPackage(t *testing.T, file string) {
	t.Helper()
	_, err := execute(t, "budget", "add", "--file", file,
		"--category", "Production",
		"--subcategory", "Equipment",
		"--description", "Camera package",
		"--amount", "4000",
		"--actual", "4500",
		"--date", "2024-03-15")
	require.NoError(t, err)
}

// =============================================================================
// TEMPLATES
// =============================================================================

func TestTemplatesList(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "templates")
	require.NoError(t, err)

	for _, want := range []string{"feature-film", "short-film", "documentary", "$1,160,000"} {
		assert.Contains(t, out, want)
	}
}

func TestTemplatesShow(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "templates", "SHORT-FILM")
	require.NoError(t, err)
	assert.Contains(t, out, "Short Film Budget Template")

	_, err = execute(t, "templates", "western")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "western", nf.ID)
}

// =============================================================================
// BUDGET
// =============================================================================

func TestBudgetAddAndList(t *testing.T) {
	home := setupHome(t)
	file := filepath.Join(home, "budget.csv")

	addCameraPackage(t, file)

	out, err := execute(t, "budget", "list", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Camera package")
	assert.Contains(t, out, "$4,000")

	out, err = execute(t, "--json", "budget", "list", "--file", file)
	require.NoError(t, err)
	listing, command := decodeJSON[BudgetListing](t, out)
	assert.Equal(t, "budget list", command)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "Equipment", listing.Items[0].Subcategory)
	assert.Equal(t, "500", listing.Items[0].Variance.String())
	assert.Equal(t, 1, listing.Summary.ItemCount)
}

func TestBudgetAddRequiresFile(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "budget", "add", "--category", "Production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

func TestBudgetAddRejectsInvalidEntry(t *testing.T) {
	home := setupHome(t)
	file := filepath.Join(home, "budget.csv")

	tests := []struct {
		name string
		args []string
	}{
		{"missing description", []string{"--category", "Production", "--subcategory", "Equipment"}},
		{"unknown category", []string{"--category", "Catering", "--subcategory", "Lunch", "--description", "x"}},
		{"bad amount", []string{"--category", "Production", "--subcategory", "Equipment", "--description", "x", "--amount", "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"budget", "add", "--file", file}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
		})
	}

	_, err := os.Stat(file)
	assert.True(t, errors.Is(err, os.ErrNotExist), "rejected entries must not create the ledger file")
}

func TestBudgetImport(t *testing.T) {
	home := setupHome(t)
	src := filepath.Join(home, "source.csv")
	dst := filepath.Join(home, "ledger.json")

	addCameraPackage(t, src)

	out, err := execute(t, "budget", "import", src, "--file", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 items")

	items, err := export.ReadFile(dst)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Camera package", items[0].Description)
}

func TestBudgetExport(t *testing.T) {
	home := setupHome(t)
	file := filepath.Join(home, "budget.csv")
	outDir := filepath.Join(home, "exports")
	addCameraPackage(t, file)

	out, err := execute(t, "--json", "budget", "export", "--file", file, "--format", "markdown", "--out", outDir)
	require.NoError(t, err)

	data, _ := decodeJSON[map[string]string](t, out)
	assert.Equal(t, "markdown", data["format"])
	content, err := os.ReadFile(data["path"])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Camera package")
}

// =============================================================================
// REPORT
// =============================================================================

func TestReportFormats(t *testing.T) {
	home := setupHome(t)
	file := filepath.Join(home, "budget.csv")
	addCameraPackage(t, file)

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"Budget Report", "Categories", "Top Variances", "Monthly", "Mar 2024"}},
		{"markdown", []string{"#", "Camera package"}},
		{"json", []string{`"summary"`, `"categories"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "report", "--file", file, "--format", tt.format)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}

	_, err := execute(t, "report", "--file", file, "--format", "pdf")
	assert.Error(t, err)
}

func TestReportMissingLedgerFails(t *testing.T) {
	home := setupHome(t)
	_, err := execute(t, "report", "--file", filepath.Join(home, "nope.csv"))
	assert.Error(t, err)
}

// =============================================================================
// CONFIG, STATUS, VERSION
// =============================================================================

func TestConfigSetAndShow(t *testing.T) {
	home := setupHome(t)

	_, err := execute(t, "config", "set", "local.ollama_model", "mistral")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `ollama_model = "mistral"`)
	assert.NotContains(t, string(data), "offline_mode = true", "flag overrides are not persisted")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "mistral")

	out, err = execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml"), strings.TrimSpace(out))
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	setupHome(t)
	_, err := execute(t, "config", "set", "local.nonsense", "1")
	assert.Error(t, err)
}

func TestStatusJSONOffline(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "--json", "status")
	require.NoError(t, err)

	st, _ := decodeJSON[StatusOutput](t, out)
	assert.True(t, st.Ollama.Offline)
	assert.False(t, st.Ollama.Reachable)
	assert.Equal(t, Version, st.Version)
}

func TestModelsFailsOffline(t *testing.T) {
	setupHome(t)
	_, err := execute(t, "models")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
}

func TestDoctorOffline(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "--json", "doctor")
	require.NoError(t, err)

	report, _ := decodeJSON[DoctorReport](t, out)
	assert.True(t, report.Healthy)
	assert.Equal(t, 1, report.Warned)
	names := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Config Valid", "Ollama Running", "Config Writable"}, names)
}

func TestVersionJSON(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "--json", "version")
	require.NoError(t, err)

	info, command := decodeJSON[VersionInfo](t, out)
	assert.Equal(t, "version", command)
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestScheduleJSON(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "--json", "schedule")
	require.NoError(t, err)

	items, _ := decodeJSON[[]map[string]interface{}](t, out)
	assert.NotEmpty(t, items)
}

func TestAskOffline(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "--json", "ask", "create", "a", "documentary", "budget")
	require.NoError(t, err)

	res, _ := decodeJSON[AskResult](t, out)
	assert.Equal(t, "create a documentary budget", res.Question)
	assert.Equal(t, assistant.IntentGenerateTemplate.String(), res.Intent)
	assert.Contains(t, res.Reply.Content, "Documentary Budget Template")
}

// =============================================================================
// CHAT LOOP
// =============================================================================

type fakeReader struct {
	lines []string
}

func (f *fakeReader) ReadInput(string) (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestReplTemplateFlow(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "out.json")
	sess := session.New(session.Options{Offline: true})

	var out bytes.Buffer
	r := &repl{
		sess: sess,
		in: &fakeReader{lines: []string{
			"create a short film budget",
			"/template",
			"apply it",
			"/budget",
			"/save " + saved,
			"/bogus",
			"/quit",
			"never read",
		}},
		out: &out,
	}
	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Short Film Budget Template")
	assert.Contains(t, text, "Unknown command /bogus")

	want := len(assistant.TemplateFor(assistant.ProjectShortFilm).Items)
	assert.Equal(t, want, sess.Ledger().Len())

	items, err := export.ReadFile(saved)
	require.NoError(t, err)
	assert.Len(t, items, want)
}

func TestReplEndsOnEOF(t *testing.T) {
	sess := session.New(session.Options{Offline: true})
	var out bytes.Buffer
	r := &repl{sess: sess, in: &fakeReader{}, out: &out}

	assert.NoError(t, r.run(context.Background()))
}

func TestReplReadError(t *testing.T) {
	sess := session.New(session.Options{Offline: true})
	r := &repl{sess: sess, in: errReader{}, out: io.Discard}

	err := r.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

type errReader struct{}

func (errReader) ReadInput(string) (string, error) { return "", errors.New("tty gone") }

// =============================================================================
// TABLE
// =============================================================================

func TestTableRender(t *testing.T) {
	out := Table{
		Title:   "Categories",
		Headers: []string{"Category", "Budget"},
		Rows: [][]string{
			{"Production", "$45,000"},
			separatorRow,
			{"Post-Production", "$5"},
		},
	}.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "Categories", lines[0])

	width := util.StringWidth(lines[1])
	for _, line := range lines[1:] {
		assert.Equal(t, width, util.StringWidth(line), line)
	}
	assert.Contains(t, out, "│ Post-Production │      $5 │")
}

func TestTableRenderEmpty(t *testing.T) {
	assert.Empty(t, Table{}.Render())
}
