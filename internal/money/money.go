// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package money parses and formats budget amounts.
//
// Amounts are shopspring/decimal values. Formatting follows US English
// grouping with at most three fraction digits and no trailing zeros, so
// 1160000 renders as "1,160,000" and 1234.5 as "1,234.5".
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount is returned by Parse for input that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// maxFractionDigits matches the default of a US locale number format.
const maxFractionDigits = 3

var printer = message.NewPrinter(language.AmericanEnglish)

// Number formats d with thousands separators and no currency symbol.
func Number(d decimal.Decimal) string {
	r := d.Round(maxFractionDigits)
	neg := r.IsNegative()
	r = r.Abs()

	whole := r.Truncate(0)
	out := printer.Sprintf("%d", whole.IntPart())

	frac := r.Sub(whole)
	if !frac.IsZero() {
		// "0.125" -> ".125"
		out += strings.TrimPrefix(frac.String(), "0")
	}
	if neg {
		return "-" + out
	}
	return out
}

// Format renders d as a dollar amount, e.g. "$1,160,000" or "-$250".
func Format(d decimal.Decimal) string {
	if d.IsNegative() && !d.Round(maxFractionDigits).IsZero() {
		return "-$" + Number(d.Abs())
	}
	return "$" + Number(d.Abs())
}

// Percent formats a ratio already scaled to 0..100 with one decimal place.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Parse accepts plain numbers as well as "$1,234.50" style input.
// Blank input parses as zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// Sum adds amounts exactly.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
