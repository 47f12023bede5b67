// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"strings"
)

// promptPreamble wraps every delegated message.
const promptPreamble = `You are an expert movie budgeting assistant. You help filmmakers create and manage budgets for their projects.

Context: You have access to industry-standard movie budgeting categories and can provide intelligent recommendations.

User input: %s

Please provide a helpful, professional response that includes:
- Clear explanations
- Industry best practices
- Specific recommendations when appropriate
- Professional tone

Response:`

// FormatPrompt wraps the user's message in the budgeting persona.
func FormatPrompt(input string) string {
	return fmt.Sprintf(promptPreamble, input)
}

// Canned replies used when the language model cannot answer.
const (
	fallbackTemplate = "I'd be happy to help you create a budget template! \n\n" +
		"For a feature film, I recommend starting with these categories:\n" +
		"• Above the Line (Director, Producer, Cast)\n" +
		"• Production (Equipment, Location, Props)\n" +
		"• Post-Production (Editing, VFX, Sound)\n" +
		"• Other (Insurance, Legal, Marketing)\n" +
		"• Contingency (Emergency Fund)\n\n" +
		"Would you like me to create a detailed template for your specific project type?"

	fallbackAnalysis = "I can help you analyze your budget! \n\n" +
		"To provide the best analysis, I'll need to know:\n" +
		"• Your total budget vs. actual spending\n" +
		"• Which categories are over/under budget\n" +
		"• Your project timeline and scope\n\n" +
		"Would you like me to analyze your current budget data?"

	fallbackAdvice = "Here are some general movie budgeting recommendations:\n\n" +
		"1. **Always include a contingency fund** (10-15% of total budget)\n" +
		"2. **Track actual vs. budgeted amounts** regularly\n" +
		"3. **Break down large expenses** into smaller, manageable items\n" +
		"4. **Consider post-production costs** early in planning\n" +
		"5. **Plan for unexpected expenses** in each category\n\n" +
		"What specific aspect would you like advice on?"

	fallbackGeneric = "I understand you're asking about \"%s\". \n\n" +
		"As a movie budgeting assistant, I can help you with:\n" +
		"• Creating budget templates\n" +
		"• Analyzing spending patterns\n" +
		"• Providing industry recommendations\n" +
		"• Organizing categories and subcategories\n" +
		"• Tracking variances and trends\n\n" +
		"What specific aspect of movie budgeting would you like to explore?"
)

// Apology replaces any reply that could not be produced at all.
const Apology = "I apologize, but I'm having trouble processing your request right now. " +
	"Please try again or ask me something else about movie budgeting."

// FallbackResponse picks the canned reply for a message. It checks, in
// order: template/create, analyze/report, recommend/advice, then falls back
// to a reply that echoes the original message.
func FallbackResponse(input string) string {
	q := strings.ToLower(input)
	switch {
	case containsAny(q, []string{"template", "create"}):
		return fallbackTemplate
	case containsAny(q, []string{"analyze", "report"}):
		return fallbackAnalysis
	case containsAny(q, []string{"recommend", "advice"}):
		return fallbackAdvice
	default:
		return fmt.Sprintf(fallbackGeneric, input)
	}
}

// Completion is the outcome of a language model call: either Text or Err.
type Completion struct {
	Text string
	Err  error
}

// OK reports whether the call succeeded.
func (c Completion) OK() bool {
	return c.Err == nil
}

// Resolve turns a completion into the reply shown to the user. Failures
// never surface; they become the canned reply for input.
func Resolve(input string, c Completion) string {
	if c.OK() {
		return c.Text
	}
	return FallbackResponse(input)
}
