// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackResponse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{"template", "Need a TEMPLATE", "I'd be happy to help you create a budget template! \n\n"},
		{"create", "create something", "I'd be happy to help you create a budget template!"},
		{"analyze", "can you analyze costs", "I can help you analyze your budget! \n\n"},
		{"report", "weekly report", "I can help you analyze your budget!"},
		{"recommend", "what do you recommend", "Here are some general movie budgeting recommendations:\n\n1. **Always include a contingency fund**"},
		{"advice", "any advice?", "Here are some general movie budgeting recommendations:"},
		{"generic", "How much is catering?", "I understand you're asking about \"How much is catering?\". \n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackResponse(tt.input)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("FallbackResponse(%q) = %q, want prefix %q", tt.input, got, tt.prefix)
			}
		})
	}
}

func TestFallbackResponse_IsPure(t *testing.T) {
	in := "100% of the catering budget"
	assert.Equal(t, FallbackResponse(in), FallbackResponse(in))
	assert.Contains(t, FallbackResponse(in), `"100% of the catering budget"`)
}

func TestFormatPrompt(t *testing.T) {
	p := FormatPrompt("How big should contingency be?")
	assert.True(t, strings.HasPrefix(p, "You are an expert movie budgeting assistant."))
	assert.Contains(t, p, "\nUser input: How big should contingency be?\n")
	assert.True(t, strings.HasSuffix(p, "\n\nResponse:"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "model text", Resolve("anything", Completion{Text: "model text"}))
	assert.Equal(t, FallbackResponse("any advice"), Resolve("any advice", Completion{Err: errors.New("down")}))
	assert.Equal(t, "", Resolve("x", Completion{}), "an empty successful reply is passed through")
}
