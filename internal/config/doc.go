// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for reelbudget.
//
// Configuration is a TOML file with sensible defaults, environment variable
// overrides and validation. A .env file in the working directory is read
// into the environment first when LoadDotEnv is called.
//
// # Key Types
//
//   - Config: main configuration structure
//   - LocalConfig: Ollama URL, model, timeout and offline mode
//   - ProjectConfig: project settings (name, total budget, dates)
//   - ServerConfig: JSON API listen address and rate limits
//
// # Configuration Precedence
//
//   - Command-line flags
//   - Environment variables (REELBUDGET_*)
//   - ~/.reelbudget/config.toml (or $REELBUDGET_HOME/config.toml)
//   - Built-in defaults
//
// # Usage
//
//	config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    BaseURL:      cfg.Local.OllamaURL,
//	    DefaultModel: cfg.Local.OllamaModel,
//	    Timeout:      cfg.Timeout(),
//	})
package config
