// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"errors"
	"testing"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST:11434", true},
		{"127.0.0.1", true},
		{"127.0.0.1:11434", true},
		{"127.8.9.10", true},
		{"::1", true},
		{"[::1]:11434", true},
		{"0:0:0:0:0:0:0:1", true},
		{"192.168.1.20", false},
		{"ollama.example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLocalhost(tt.host); got != tt.want {
			t.Errorf("IsLocalhost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestValidateOllamaURL(t *testing.T) {
	tests := []struct {
		name    string
		offline bool
		url     string
		wantErr error
	}{
		{"local online", false, "http://127.0.0.1:11434", nil},
		{"remote online", false, "http://gpu-box:11434", nil},
		{"https online", false, "https://ollama.example.com", nil},
		{"local offline", true, "http://localhost:11434", nil},
		{"remote offline", true, "http://gpu-box:11434", ErrNonLocalhost},
		{"file scheme", false, "file:///etc/passwd", ErrInvalidURLScheme},
		{"no scheme", false, "127.0.0.1:11434", ErrInvalidURL},
		{"empty host", false, "http://", ErrInvalidURL},
		{"garbage", false, "::::", ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetOfflineMode(tt.offline)
			defer SetOfflineMode(false)

			err := ValidateOllamaURL(tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOllamaURL(%q) = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestStatusBadge(t *testing.T) {
	SetOfflineMode(true)
	if StatusBadge() != "[OFFLINE]" {
		t.Errorf("StatusBadge() = %q", StatusBadge())
	}
	SetOfflineMode(false)
	if StatusBadge() != "" {
		t.Errorf("StatusBadge() = %q", StatusBadge())
	}
}
