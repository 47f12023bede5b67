// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the reelbudget command tree.
//
// Commands are built with cobra. Running reelbudget without a command starts
// the full-screen chat UI; every other command works on a fresh session
// seeded from --file when given.
//
// # Key Types
//
//   - JSONResponse: envelope written by every command under --json
//   - CommandError, NotFoundError: errors DisplayError knows how to print
//   - Table: bordered text tables for listings
//   - HealthCheck: one doctor check result
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
//
// # Commands Overview
//
//	(none)      Full-screen chat UI
//	ask         One question, one reply
//	chat        Line-based chat with history and /commands
//	budget      list, add, import, export ledger lines
//	report      Category breakdown, top variances, monthly totals
//	templates   Budget templates by project type
//	schedule    Production schedule
//	serve       JSON API, optionally hot-reloading a ledger file
//	status      Ollama reachability and project settings
//	models      Models installed in Ollama
//	doctor      Setup health checks
//	config      show, set, reset, path
//	version     Build information
//
// # Global Flags
//
//	--file, -f      Ledger file (CSV or JSON)
//	--model, -m     Ollama model
//	--ollama-url    Ollama base URL
//	--offline       Built-in replies only
//	--json          JSON output
//	--quiet, -q     Minimal output, no log file
//	--config        Config file path
//
// Flags take precedence over REELBUDGET_* environment variables, which take
// precedence over the config file.
package cli
