// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status, models and version commands for reelbudget.
//
// Command: status
// Short:   Show Ollama reachability, model and project settings
// Aliases: s, info
//
// Examples:
//   reelbudget status                 Show status
//   reelbudget status --json          Status in JSON format
package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/money"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/ollama"
	"github.com/jeranaias/reelbudget/internal/report"
	"github.com/jeranaias/reelbudget/internal/session"
)

// probeTimeout bounds the Ollama reachability check.
const probeTimeout = 3 * time.Second

// =============================================================================
// STATUS
// =============================================================================

// StatusOutput is the --json payload for status.
type StatusOutput struct {
	Version string               `json:"version"`
	Ollama  StatusOllamaInfo     `json:"ollama"`
	Project config.ProjectConfig `json:"project"`
	Session session.Status       `json:"session"`
	Budget  report.Summary       `json:"budget"`
	Config  string               `json:"config_path"`
	LogPath string               `json:"log_path,omitempty"`
}

// StatusOllamaInfo describes the model backend.
type StatusOllamaInfo struct {
	URL       string `json:"url"`
	Model     string `json:"model"`
	Reachable bool   `json:"reachable"`
	Offline   bool   `json:"offline"`
	Error     string `json:"error,omitempty"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"s", "info"},
		Short:   "Show Ollama reachability, model and project settings",
		Args:    cobra.NoArgs,
		RunE:    runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	sess, cfg, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	st := collectStatus(cmd.Context(), sess, cfg)
	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "status", st)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "reelbudget status"))
	fmt.Fprintln(out, RenderSeparator(50))

	fmt.Fprintln(out, RenderConditional(SectionStyle, "Assistant"))
	fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Ollama:"), ollamaStatus(st.Ollama), st.Ollama.URL)
	fmt.Fprintf(out, "%s%s\n", RenderLabel("Model:"), st.Ollama.Model)
	if st.Ollama.Error != "" {
		fmt.Fprintf(out, "%s%s\n", RenderLabel("Last error:"), RenderConditional(DimStyle, st.Ollama.Error))
	}

	fmt.Fprintln(out, RenderConditional(SectionStyle, "Project"))
	fmt.Fprintf(out, "%s%s\n", RenderLabel("Name:"), st.Project.Name)
	fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Total budget:"),
		money.Number(decimal.NewFromFloat(st.Project.TotalBudget)), st.Project.Currency)
	fmt.Fprintf(out, "%s%s to %s\n", RenderLabel("Dates:"), st.Project.StartDate, st.Project.EndDate)

	fmt.Fprintln(out, RenderConditional(SectionStyle, "Ledger"))
	writeSummary(out, st.Budget)

	fmt.Fprintln(out, RenderConditional(SectionStyle, "Files"))
	fmt.Fprintf(out, "%s%s\n", RenderLabel("Config:"), st.Config)
	if st.LogPath != "" {
		fmt.Fprintf(out, "%s%s\n", RenderLabel("Log:"), st.LogPath)
	}
	return nil
}

func collectStatus(ctx context.Context, sess *session.Session, cfg *config.Config) StatusOutput {
	if ctx == nil {
		ctx = context.Background()
	}
	path, _ := configPath()
	logPath, _ := cfg.LogPath()

	info := StatusOllamaInfo{
		URL:     cfg.Local.OllamaURL,
		Model:   cfg.Local.OllamaModel,
		Offline: offline.IsOfflineMode(),
	}
	if !info.Offline && sess.Client() != nil {
		probe, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := sess.Client().CheckRunning(probe); err != nil {
			info.Error = err.Error()
		} else {
			info.Reachable = true
		}
	}

	return StatusOutput{
		Version: Version,
		Ollama:  info,
		Project: sess.Project(),
		Session: sess.GetStatus(),
		Budget:  report.Summarize(sess.Ledger().State()),
		Config:  path,
		LogPath: logPath,
	}
}

func ollamaStatus(info StatusOllamaInfo) string {
	switch {
	case info.Offline:
		return RenderStatus("offline")
	case info.Reachable:
		return RenderStatus("online")
	default:
		return RenderStatus("unreachable")
	}
}

// =============================================================================
// MODELS
// =============================================================================

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models installed in Ollama",
		Args:  cobra.NoArgs,
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, _ []string) error {
	sess, cfg, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	if offline.IsOfflineMode() {
		return NewCommandError("models", "list", "offline mode is on; Ollama is not contacted", nil)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	models, err := sess.Client().ListModels(ctx)
	if err != nil {
		if ollama.IsNotRunning(err) {
			return fmt.Errorf("Ollama is not running at %s. Start it with: ollama serve", cfg.Local.OllamaURL)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "models", models)
	}
	if len(models) == 0 {
		fmt.Fprintln(out, "No models installed. Pull one with: ollama pull "+cfg.Local.OllamaModel)
		return nil
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		marker := ""
		if m.Name == cfg.Local.OllamaModel || m.Name == cfg.Local.OllamaModel+":latest" {
			marker = "*"
		}
		rows = append(rows, []string{m.Name, m.FormatSize(), marker})
	}
	fmt.Fprint(out, Table{
		Headers: []string{"Model", "Size", "Current"},
		Rows:    rows,
	}.Render())
	return nil
}

// =============================================================================
// VERSION
// =============================================================================

// VersionInfo is the --json payload for version.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				return outputJSON(out, "version", info)
			}
			fmt.Fprintf(out, "reelbudget %s\n", info.Version)
			fmt.Fprintf(out, "  Commit:   %s\n", info.GitCommit)
			fmt.Fprintf(out, "  Built:    %s\n", info.BuildDate)
			fmt.Fprintf(out, "  Go:       %s\n", info.GoVersion)
			fmt.Fprintf(out, "  Platform: %s\n", info.Platform)
			return nil
		},
	}
}
