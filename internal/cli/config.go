// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command for reelbudget.
//
// Command: config [show|set|reset|path]
//
// Examples:
//   reelbudget config                           Show configuration
//   reelbudget config set local.ollama_model mistral
//   reelbudget config set project.total_budget 250000
//   reelbudget config reset
//   reelbudget config path
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Set a value in the config file",
			Long:  "Set a value in the config file. Keys:\n  " + strings.Join(config.GetAllKeys(), "\n  "),
			Args:  cobra.ExactArgs(2),
			RunE:  runConfigSet,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the config file to defaults",
			Args:  cobra.NoArgs,
			RunE:  runConfigReset,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE:  runConfigPath,
		},
	)
	return cmd
}

// =============================================================================
// SHOW
// =============================================================================

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, _ := configPath()

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "config show", cfg)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "reelbudget configuration"))
	fmt.Fprintln(out, RenderSeparator(50))

	section := ""
	for _, key := range config.GetAllKeys() {
		sec, name, _ := strings.Cut(key, ".")
		if sec != section {
			section = sec
			fmt.Fprintln(out, RenderConditional(SectionStyle, "["+sec+"]"))
		}
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s%v\n", RenderLabel(name+":"), val)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", path)
	return nil
}

// =============================================================================
// SET / RESET
// =============================================================================

// readConfigFile loads only the file and defaults, so that flag and
// environment overrides are not written back.
func readConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return cfg, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return NewCommandError("config", "set", "invalid key or value", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewCommandError("config", "set", key+" rejected", err)
	}
	if err := writeConfig(cfg, path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "config set", map[string]string{"key": key, "value": value})
	}
	fmt.Fprintf(out, "%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), key, value)
	return nil
}

func runConfigReset(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := writeConfig(config.Default(), path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "config reset", map[string]string{"path": path})
	}
	fmt.Fprintf(out, "%s Configuration reset to defaults\n", RenderConditional(SuccessStyle, "[OK]"))
	fmt.Fprintf(out, "Config file: %s\n", path)
	return nil
}

func writeConfig(cfg *config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// =============================================================================
// PATH
// =============================================================================

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		_, statErr := os.Stat(path)
		return outputJSON(out, "config path", map[string]interface{}{"path": path, "exists": statErr == nil})
	}
	fmt.Fprintln(out, path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (file does not exist - it is created by 'config set')\n",
			RenderConditional(DimStyle, "Note"))
	}
	return nil
}
