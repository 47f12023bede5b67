// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline implements the offline switch for the assistant.
//
// In offline mode the assistant never contacts a language model and every
// free-form question gets a canned reply. The Ollama base URL is still
// validated so that a misconfigured URL is caught before the first request.
//
// # Usage
//
//	offline.SetOfflineMode(cfg.Local.OfflineMode)
//	if err := offline.ValidateOllamaURL(cfg.Local.OllamaURL); err != nil {
//	    return err
//	}
package offline
