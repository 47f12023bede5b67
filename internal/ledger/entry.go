// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FORM INPUT
// =============================================================================

// Entry is user-supplied input for a new or edited budget line. The store
// itself trusts its input, so surfaces validate an Entry before turning it
// into an Item.
type Entry struct {
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Actual      decimal.Decimal `json:"actual"`
	Notes       string          `json:"notes"`
	Date        string          `json:"date"`
}

// ValidationError describes one invalid Entry field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// MissingFieldsMessage is shown when a required field is blank.
const MissingFieldsMessage = "Please fill in all required fields"

// Validate checks the entry against the taxonomy in st. It returns nil or
// a ValidationErrors value.
func (e Entry) Validate(st State) error {
	var errs ValidationErrors

	required := []struct {
		field, value string
	}{
		{"category", e.Category},
		{"subcategory", e.Subcategory},
		{"description", e.Description},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: MissingFieldsMessage})
		}
	}

	category := strings.TrimSpace(e.Category)
	sub := strings.TrimSpace(e.Subcategory)
	if category != "" && !st.HasCategory(category) {
		errs = append(errs, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category %q", category),
		})
	} else if category != "" && sub != "" && !st.HasSubcategory(category, sub) {
		errs = append(errs, ValidationError{
			Field:   "subcategory",
			Message: fmt.Sprintf("%q is not a subcategory of %q", sub, category),
		})
	}

	if e.Amount.IsNegative() {
		errs = append(errs, ValidationError{Field: "amount", Message: "must not be negative"})
	}
	if e.Actual.IsNegative() {
		errs = append(errs, ValidationError{Field: "actual", Message: "must not be negative"})
	}

	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			errs = append(errs, ValidationError{
				Field:   "date",
				Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Date),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Item converts the entry into a line item with the given ID. A blank date
// becomes the calendar date of now.
func (e Entry) Item(id string, now time.Time) Item {
	date := e.Date
	if date == "" {
		date = now.Format(DateLayout)
	}
	return Item{
		ID:          id,
		Category:    strings.TrimSpace(e.Category),
		Subcategory: strings.TrimSpace(e.Subcategory),
		Description: strings.TrimSpace(e.Description),
		Amount:      e.Amount,
		Actual:      e.Actual,
		Notes:       e.Notes,
		Date:        date,
	}.Normalized()
}
