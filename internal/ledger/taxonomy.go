// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

// Seed category names.
const (
	CategoryAboveTheLine   = "Above the Line"
	CategoryProduction     = "Production"
	CategoryPostProduction = "Post-Production"
	CategoryOther          = "Other"
	CategoryContingency    = "Contingency"
)

// DefaultCategories returns the seed category list in display order.
func DefaultCategories() []string {
	return []string{
		CategoryAboveTheLine,
		CategoryProduction,
		CategoryPostProduction,
		CategoryOther,
		CategoryContingency,
	}
}

// DefaultSubcategories returns the seed subcategory lists keyed by category.
func DefaultSubcategories() map[string][]string {
	return map[string][]string{
		CategoryAboveTheLine:   {"Director", "Producer", "Writer", "Cast", "Crew"},
		CategoryProduction:     {"Equipment", "Location", "Props", "Costumes", "Transportation"},
		CategoryPostProduction: {"Editing", "Visual Effects", "Sound", "Music", "Color Grading"},
		CategoryOther:          {"Insurance", "Legal", "Marketing", "Distribution"},
		CategoryContingency:    {"Emergency Fund", "Overages"},
	}
}
