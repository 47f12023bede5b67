// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Camera", 10, "Camera"},
		{"truncated", "Production Insurance", 10, "Product..."},
		{"tiny", "Director", 2, "Di"},
		{"zero", "x", 0, ""},
		{"unicode", "🎬🎬🎬🎬🎬", 4, "🎬..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("Budget", 10); got != "Budget" {
		t.Errorf("TruncateWidth() = %q", got)
	}
	if got := TruncateWidth("Visual Effects", 8); got != "Visua..." {
		t.Errorf("TruncateWidth() = %q, want 'Visua...'", got)
	}
	if got := StringWidth(TruncateWidth("日本語のテキスト", 7)); got > 7 {
		t.Errorf("width %d exceeds 7", got)
	}
}

func TestPad(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadLeft("$5", 4); got != "  $5" {
		t.Errorf("PadLeft() = %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("PadRight() = %q", got)
	}
	if StringWidth("日本") != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", StringWidth("日本"))
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "budget.json")

	if err := AtomicWriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want 'second'", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
