// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"Create a feature film budget template", IntentGenerateTemplate},
		{"TEMPLATE please", IntentGenerateTemplate},
		{"create a report", IntentGenerateTemplate},
		{"Analyze my current budget", IntentAnalyze},
		{"give me a report", IntentAnalyze},
		{"apply it", IntentApplyTemplate},
		{"please use template", IntentGenerateTemplate},
		{"analyze and apply", IntentAnalyze},
		{"What categories should I use?", IntentDelegate},
		{"", IntentDelegate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestIntent_String(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentGenerateTemplate, "generate_template"},
		{IntentAnalyze, "analyze"},
		{IntentApplyTemplate, "apply_template"},
		{IntentDelegate, "delegate"},
	}
	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIntent_TextRoundTrip(t *testing.T) {
	for _, in := range []Intent{IntentDelegate, IntentGenerateTemplate, IntentAnalyze, IntentApplyTemplate} {
		text, err := in.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", in, err)
		}
		var out Intent
		if err := out.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if out != in {
			t.Errorf("round trip %v -> %q -> %v", in, text, out)
		}
	}

	var bad Intent
	if err := bad.UnmarshalText([]byte("summon")); err == nil {
		t.Error("UnmarshalText(summon) should fail")
	}
}
