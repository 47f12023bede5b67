// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with a local Ollama server.
//
// Only the endpoints the budgeting assistant needs are covered: the
// non-streaming /api/generate completion, the /api/tags model listing
// (which doubles as the availability probe) and the root health check.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - GenerateRequest / GenerateResponse: completion request and reply
//   - ModelInfo: one entry of the installed model list
//   - ClientError: typed error with ErrorType for not-running, timeout and so on
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    BaseURL:      "http://127.0.0.1:11434",
//	    DefaultModel: "llama2",
//	})
//	resp, err := client.Generate(ctx, "", "How much should I set aside for insurance?")
//	if err != nil {
//	    // every failure is a *ClientError
//	}
//	fmt.Println(resp.Response)
package ollama
