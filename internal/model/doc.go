// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the chat message and conversation types.
//
// # Key Types
//
//   - Message: one chat turn with role, content and timestamp
//   - Conversation: append-only, concurrency-safe message log that opens
//     with the assistant welcome message
//   - Role: user or assistant
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("Create a short film template")
//	for _, m := range conv.Messages() {
//	    fmt.Println(m.Role.DisplayName(), m.Content)
//	}
package model
