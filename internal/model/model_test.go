// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"sync"
	"testing"
)

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{Role("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("b")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q %q", a.ID, b.ID)
	}
	if a.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", a.Role)
	}
}

func TestMessage_Preview(t *testing.T) {
	m := NewAssistantMessage("🎬 Lights, camera, action")
	if got := m.Preview(100); got != m.Content {
		t.Errorf("Preview(100) = %q", got)
	}
	if got := m.Preview(8); got != "🎬 Lig..." {
		t.Errorf("Preview(8) = %q, want '🎬 Lig...'", got)
	}
}

func TestNewConversation_StartsWithWelcome(t *testing.T) {
	c := NewConversation()
	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(Messages()) = %d, want 1", len(msgs))
	}
	if msgs[0].Role != RoleAssistant {
		t.Errorf("Role = %q, want assistant", msgs[0].Role)
	}
	if !strings.HasPrefix(msgs[0].Content, "🎬 **Welcome to Movie Magic Budgeting AI!**") {
		t.Errorf("unexpected welcome: %q", msgs[0].Content)
	}
	if c.Title() != "New conversation" {
		t.Errorf("Title() = %q", c.Title())
	}
}

func TestConversation_AppendOrder(t *testing.T) {
	c := NewConversation()
	c.AddUserMessage("analyze my budget")
	c.AddAssistantMessage("report")

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[2].Role != RoleAssistant {
		t.Errorf("order = %s, %s", msgs[1].Role, msgs[2].Role)
	}
	last, ok := c.Last()
	if !ok || last.Content != "report" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	if c.Title() != "analyze my budget" {
		t.Errorf("Title() = %q", c.Title())
	}

	msgs[0].Content = "mutated"
	if c.Messages()[0].Content == "mutated" {
		t.Error("Messages() must return a copy")
	}
}

func TestConversation_ConcurrentAppend(t *testing.T) {
	c := NewConversation()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddUserMessage("hi")
		}()
	}
	wg.Wait()
	if c.Len() != 21 {
		t.Errorf("Len() = %d, want 21", c.Len())
	}
}
