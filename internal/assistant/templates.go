// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/money"
)

// ============================================================================
// TEMPLATE TYPES
// ============================================================================

// ProjectType selects a template catalog.
type ProjectType string

const (
	ProjectFeatureFilm ProjectType = "feature-film"
	ProjectShortFilm   ProjectType = "short-film"
	ProjectDocumentary ProjectType = "documentary"
)

// TemplateItem is one proposed budget line.
type TemplateItem struct {
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Template is a named set of proposed budget lines.
type Template struct {
	Type        ProjectType    `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []TemplateItem `json:"items"`
}

// Total sums the template amounts.
func (t Template) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range t.Items {
		total = total.Add(it.Amount)
	}
	return total
}

// ============================================================================
// CATALOG
// ============================================================================

func line(cat, sub, desc string, amount int64) TemplateItem {
	return TemplateItem{Category: cat, Subcategory: sub, Description: desc, Amount: decimal.NewFromInt(amount)}
}

func catalog(pt ProjectType) Template {
	const (
		atl  = ledger.CategoryAboveTheLine
		prod = ledger.CategoryProduction
		post = ledger.CategoryPostProduction
		oth  = ledger.CategoryOther
		cont = ledger.CategoryContingency
	)

	switch pt {
	case ProjectShortFilm:
		return Template{
			Type:        ProjectShortFilm,
			Name:        "Short Film Budget Template",
			Description: "Template for short film production",
			Items: []TemplateItem{
				line(atl, "Director", "Director Fee", 5000),
				line(prod, "Equipment", "Camera Rental", 2000),
				line(prod, "Location", "Location Fees", 1000),
				line(post, "Editing", "Editor Fee", 3000),
				line(oth, "Marketing", "Festival Submissions", 500),
			},
		}
	case ProjectDocumentary:
		return Template{
			Type:        ProjectDocumentary,
			Name:        "Documentary Budget Template",
			Description: "Template for documentary production",
			Items: []TemplateItem{
				line(atl, "Director", "Director Fee", 30000),
				line(prod, "Equipment", "Camera & Sound Equipment", 15000),
				line(prod, "Transportation", "Travel Expenses", 10000),
				line(post, "Editing", "Editor Fee", 25000),
				line(oth, "Legal", "Clearance & Rights", 5000),
			},
		}
	default:
		return Template{
			Type:        ProjectFeatureFilm,
			Name:        "Feature Film Budget Template",
			Description: "Standard template for a feature film production",
			Items: []TemplateItem{
				line(atl, "Director", "Director Fee", 150000),
				line(atl, "Producer", "Producer Fee", 100000),
				line(atl, "Cast", "Lead Actor", 500000),
				line(prod, "Equipment", "Camera Package", 75000),
				line(prod, "Location", "Location Fees", 50000),
				line(post, "Editing", "Editor Fee", 60000),
				line(post, "Visual Effects", "VFX Budget", 100000),
				line(oth, "Insurance", "Production Insurance", 25000),
				line(cont, "Emergency Fund", "Contingency Fund", 100000),
			},
		}
	}
}

// TemplateFor returns a fresh copy of the catalog template for a project type.
// Unknown types get the feature film template.
func TemplateFor(pt ProjectType) Template {
	t := catalog(pt)
	t.Items = slices.Clone(t.Items)
	return t
}

// Templates lists every catalog template.
func Templates() []Template {
	return []Template{
		TemplateFor(ProjectFeatureFilm),
		TemplateFor(ProjectShortFilm),
		TemplateFor(ProjectDocumentary),
	}
}

// DetectProjectType picks a project type from free text: "short" wins over
// "documentary", and anything else is a feature film.
func DetectProjectType(input string) ProjectType {
	q := strings.ToLower(input)
	switch {
	case strings.Contains(q, "short"):
		return ProjectShortFilm
	case strings.Contains(q, "documentary"):
		return ProjectDocumentary
	default:
		return ProjectFeatureFilm
	}
}

// RenderTemplate formats a template as the chat reply that offers it.
func RenderTemplate(t Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 **%s**\n\n%s\n\n**Template Items:**\n", t.Name, t.Description)
	for _, it := range t.Items {
		fmt.Fprintf(&b, "• %s > %s: %s - %s\n", it.Category, it.Subcategory, it.Description, money.Format(it.Amount))
	}
	b.WriteString("\nWould you like me to apply this template to your budget?")
	return b.String()
}
