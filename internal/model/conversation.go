// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "🎬 **Welcome to Movie Magic Budgeting AI!**\n\n" +
	"I'm here to help you with your movie budgeting needs. I can:\n\n" +
	"• **Create budget templates** for different types of projects\n" +
	"• **Analyze your current budget** and provide recommendations\n" +
	"• **Suggest optimizations** based on industry standards\n" +
	"• **Help with category organization** and expense tracking\n" +
	"• **Generate reports** and insights\n\n" +
	"What would you like to work on today?"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is an append-only chat log. It is safe for concurrent use.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu        sync.RWMutex
	messages  []Message
	updatedAt time.Time
}

// NewConversation creates a conversation that starts with the welcome message.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		updatedAt: now,
		messages:  []Message{NewAssistantMessage(WelcomeMessage)},
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	c.updatedAt = time.Now()
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string) Message {
	msg := NewUserMessage(content)
	c.Append(msg)
	return msg
}

// AddAssistantMessage creates and appends an assistant message.
func (c *Conversation) AddAssistantMessage(content string) Message {
	msg := NewAssistantMessage(content)
	c.Append(msg)
	return msg
}

// Messages returns a copy of the log in order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.messages)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// UpdatedAt returns the time of the last append.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// Title derives a short title from the first user message.
func (c *Conversation) Title() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.messages {
		if m.Role == RoleUser {
			return m.Preview(50)
		}
	}
	return "New conversation"
}
