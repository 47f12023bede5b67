// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the application context shared by every surface.
//
// A Session owns exactly one ledger store, one conversation, one pending
// template slot, one dispatcher and one schedule. Nothing is persisted; a
// new process starts from the seed taxonomy, the welcome message and the
// demo schedule.
//
// # Key Types
//
//   - Session: the application context
//   - Options: collaborators for New
//   - Status: point-in-time summary used by "status" and /health
//
// # Usage
//
//	sess, err := session.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	reply, err := sess.Send(ctx, "create a documentary template")
package session
