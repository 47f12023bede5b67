// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/reelbudget/internal/assistant"

// replyMsg carries the dispatcher's answer back to the update loop.
type replyMsg struct {
	reply assistant.Reply
	err   error
}

// ollamaStatusMsg reports the startup reachability probe.
type ollamaStatusMsg struct {
	running bool
	err     error
}
