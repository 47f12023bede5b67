// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant implements the budgeting chat assistant.
//
// Each message is classified by ordered keyword rules (first match wins)
// and handled by one of four branches:
//
//  1. template/create: build a catalog template and hold it as pending
//  2. analyze/report: render an analysis of the current ledger
//  3. apply/use template: add the pending template's items to the ledger
//  4. anything else: ask the language model, with canned fallback replies
//
// # Key Types
//
//   - Dispatcher: owns the routing and appends both sides of the exchange
//     to the conversation
//   - Template: a named list of proposed budget lines
//   - Completion: success text or failure from the language model
//   - Generator: anything that turns a prompt into text (the Ollama client)
//
// # Usage
//
//	d := assistant.New(store, conv, scratch.NewSlot[assistant.Template](assistant.PendingKey), client)
//	reply, err := d.Send(ctx, "Create a documentary budget template")
//	if errors.Is(err, assistant.ErrBusy) {
//	    // another message is still being answered
//	}
//	fmt.Println(reply.Message.Content)
package assistant
