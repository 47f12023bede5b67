// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"strings"
)

// ============================================================================
// INTENTS
// ============================================================================

// Intent is the branch a chat message is routed to.
type Intent int

const (
	IntentDelegate Intent = iota
	IntentGenerateTemplate
	IntentAnalyze
	IntentApplyTemplate
)

// String returns the intent name used in logs and JSON.
func (i Intent) String() string {
	switch i {
	case IntentGenerateTemplate:
		return "generate_template"
	case IntentAnalyze:
		return "analyze"
	case IntentApplyTemplate:
		return "apply_template"
	default:
		return "delegate"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intent) UnmarshalText(text []byte) error {
	for _, v := range []Intent{IntentDelegate, IntentGenerateTemplate, IntentAnalyze, IntentApplyTemplate} {
		if v.String() == string(text) {
			*i = v
			return nil
		}
	}
	return fmt.Errorf("unknown intent %q", text)
}

// rule matches when the lowercased input contains any keyword.
type rule struct {
	intent   Intent
	keywords []string
}

// rules are evaluated top to bottom; the first match wins.
//
//  1. GenerateTemplate: "template", "create"
//  2. Analyze: "analyze", "report"
//  3. ApplyTemplate: "apply", "use template"
//  4. Delegate: everything else
//
// "use template" also contains "template", so it is caught by rule 1.
var rules = []rule{
	{IntentGenerateTemplate, []string{"template", "create"}},
	{IntentAnalyze, []string{"analyze", "report"}},
	{IntentApplyTemplate, []string{"apply", "use template"}},
}

// Classify returns the intent for a chat message.
func Classify(input string) Intent {
	q := strings.ToLower(input)
	for _, r := range rules {
		if containsAny(q, r.keywords) {
			return r.intent
		}
	}
	return IntentDelegate
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
