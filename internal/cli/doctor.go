// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for reelbudget.
//
// Command: doctor
// Short:   Run setup health checks
// Aliases: diag
//
// Health Checks Performed:
//   1. Config Valid      - Config file parses and validates
//   2. Ollama Running    - Ollama answers at the configured URL
//   3. Model Available   - The configured model is pulled
//   4. Config Writable   - The config directory accepts files
//   5. Ledger Readable   - The --file ledger parses (when given)
//
// Exit Codes:
//   0   No check failed
//   1   One or more checks failed
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/ollama"
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the indicator for the check status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return RenderConditional(SuccessStyle, "[OK]")
	case CheckWarn:
		return RenderConditional(WarningStyle, "[!!]")
	case CheckFail:
		return RenderConditional(ErrorStyle, "[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`

	status CheckStatus
}

func newCheck(name string, status CheckStatus, message, fix string) HealthCheck {
	return HealthCheck{Name: name, Status: status.String(), Message: message, Fix: fix, status: status}
}

// Render returns a formatted line for the check, with the fix underneath.
func (c HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.status.Symbol(), c.Message)
	if c.status != CheckPass && c.Fix != "" {
		result += "\n" + RenderConditional(DimStyle, "     -> "+c.Fix)
	}
	return result
}

// DoctorReport is the --json payload for doctor.
type DoctorReport struct {
	Checks  []HealthCheck `json:"checks"`
	Passed  int           `json:"passed"`
	Warned  int           `json:"warned"`
	Failed  int           `json:"failed"`
	Healthy bool          `json:"healthy"`
}

func newDoctorReport(checks []HealthCheck) DoctorReport {
	r := DoctorReport{Checks: checks}
	for _, c := range checks {
		switch c.status {
		case CheckPass:
			r.Passed++
		case CheckWarn:
			r.Warned++
		case CheckFail:
			r.Failed++
		}
	}
	r.Healthy = r.Failed == 0
	return r
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag"},
		Short:   "Run setup health checks",
		Args:    cobra.NoArgs,
		RunE:    runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		cfg = config.Default()
		applyFlagOverrides(cfg)
	}

	checks := []HealthCheck{checkConfigValid(path, cfgErr)}
	checks = append(checks, checkOllama(ctx, cfg)...)
	checks = append(checks, checkConfigWritable(filepath.Dir(path)))
	if flagLedgerFile != "" {
		checks = append(checks, checkLedgerReadable(flagLedgerFile))
	}

	report := newDoctorReport(checks)
	out := cmd.OutOrStdout()
	if flagJSON {
		if err := outputJSON(out, "doctor", report); err != nil {
			return err
		}
	} else {
		writeDoctorReport(out, report)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d health check(s) failed", report.Failed)
	}
	return nil
}

func writeDoctorReport(w io.Writer, report DoctorReport) {
	fmt.Fprintln(w, RenderConditional(TitleStyle, "reelbudget doctor"))
	fmt.Fprintln(w, RenderSeparator(41))
	for _, c := range report.Checks {
		fmt.Fprintln(w, c.Render())
	}
	fmt.Fprintln(w, RenderSeparator(41))

	parts := []string{fmt.Sprintf("%d passed", report.Passed)}
	if report.Warned > 0 {
		parts = append(parts, RenderConditional(WarningStyle, fmt.Sprintf("%d warning", report.Warned)))
	}
	if report.Failed > 0 {
		parts = append(parts, RenderConditional(ErrorStyle, fmt.Sprintf("%d failed", report.Failed)))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

func checkConfigValid(path string, loadErr error) HealthCheck {
	const name = "Config Valid"
	if loadErr != nil {
		return newCheck(name, CheckFail, "Config invalid: "+loadErr.Error(), "Run: reelbudget config reset")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return newCheck(name, CheckPass, "Config valid (using defaults)", "")
	}
	return newCheck(name, CheckPass, "Config valid", "")
}

// checkOllama reports reachability and model availability. Offline mode
// skips both with a warning since chat answers come from built-in replies.
func checkOllama(ctx context.Context, cfg *config.Config) []HealthCheck {
	if cfg.Local.OfflineMode {
		return []HealthCheck{newCheck("Ollama Running", CheckWarn,
			"Offline mode on; the model is not contacted", "Run: reelbudget config set local.offline_mode false")}
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Local.OllamaURL,
		Timeout:      probeTimeout,
		DefaultModel: cfg.Local.OllamaModel,
	})
	probe, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	models, err := client.ListModels(probe)
	if err != nil {
		// Unreachable Ollama only degrades chat to canned replies.
		return []HealthCheck{newCheck("Ollama Running", CheckWarn,
			fmt.Sprintf("Ollama not reachable at %s", cfg.Local.OllamaURL), "Run: ollama serve")}
	}

	checks := []HealthCheck{newCheck("Ollama Running", CheckPass,
		fmt.Sprintf("Ollama running at %s", cfg.Local.OllamaURL), "")}

	want := cfg.Local.OllamaModel
	for _, m := range models {
		if m.Name == want || strings.HasPrefix(m.Name, want+":") {
			return append(checks, newCheck("Model Available", CheckPass,
				fmt.Sprintf("Model %s available (%s)", m.Name, m.FormatSize()), ""))
		}
	}
	return append(checks, newCheck("Model Available", CheckWarn,
		fmt.Sprintf("Model %s not pulled", want), "Run: ollama pull "+want))
}

func checkConfigWritable(dir string) HealthCheck {
	const name = "Config Writable"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newCheck(name, CheckFail, "Could not create config directory: "+err.Error(),
			"Create manually: mkdir -p "+dir)
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return newCheck(name, CheckFail, "Config directory not writable: "+err.Error(),
			"Check permissions on "+dir)
	}
	_ = os.Remove(testFile)
	return newCheck(name, CheckPass, "Config directory writable", "")
}

func checkLedgerReadable(path string) HealthCheck {
	const name = "Ledger Readable"
	items, err := export.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return newCheck(name, CheckWarn, "Ledger "+path+" does not exist yet",
			"Run: reelbudget budget add --file "+path+" ...")
	case err != nil:
		return newCheck(name, CheckFail, "Ledger unreadable: "+err.Error(), "")
	}
	return newCheck(name, CheckPass, fmt.Sprintf("Ledger %s: %d items", path, len(items)), "")
}
