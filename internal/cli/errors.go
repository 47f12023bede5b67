// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands in reelbudget.
//
// Commands always return errors and never print-and-return-nil; Execute
// decides how to display them.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/ledger"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates any failure
	ExitGeneralError = 1
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "budget")
	Action  string // Action being performed (e.g., "add")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NotFoundError is returned when a named resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to stderr, as a JSON error envelope in JSON mode.
func DisplayError(err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		_ = NewJSONErrorResponse("", err).PrintTo(os.Stderr)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())
	for _, line := range errorDetails(err) {
		fmt.Fprintf(os.Stderr, "  %s %s\n", DimStyle.Render("-"), line)
	}
}

// errorDetails expands aggregated validation errors into one line per field.
func errorDetails(err error) []string {
	var lines []string

	var lerrs ledger.ValidationErrors
	if errors.As(err, &lerrs) && len(lerrs) > 1 {
		for _, e := range lerrs {
			lines = append(lines, e.Error())
		}
	}

	var cerrs config.ValidateErrors
	if errors.As(err, &cerrs) && len(cerrs) > 1 {
		for _, e := range cerrs {
			lines = append(lines, e.Error())
		}
	}
	return lines
}

// ErrMissingArgument creates an error for a missing required argument.
func ErrMissingArgument(argName, usage string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "missing required argument: %s", argName)
	if usage != "" {
		fmt.Fprintf(&b, "\n\nUsage: %s", usage)
	}
	return errors.New(b.String())
}
