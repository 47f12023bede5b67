// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATE
// =============================================================================

// State is a snapshot of the ledger. Values returned by Store.State are
// deep copies and may be modified freely by the caller.
type State struct {
	Items         []Item              `json:"items"`
	TotalBudget   decimal.Decimal     `json:"totalBudget"`
	TotalActual   decimal.Decimal     `json:"totalActual"`
	TotalVariance decimal.Decimal     `json:"totalVariance"`
	Categories    []string            `json:"categories"`
	Subcategories map[string][]string `json:"subcategories"`
}

// HasSubcategory reports whether sub is listed under category.
func (s State) HasSubcategory(category, sub string) bool {
	return slices.Contains(s.Subcategories[category], sub)
}

// HasCategory reports whether category appears in the taxonomy.
func (s State) HasCategory(category string) bool {
	return slices.Contains(s.Categories, category)
}

// FindItem returns the item with the given id.
func (s State) FindItem(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func (s State) clone() State {
	out := State{
		Items:         slices.Clone(s.Items),
		TotalBudget:   s.TotalBudget,
		TotalActual:   s.TotalActual,
		TotalVariance: s.TotalVariance,
		Categories:    slices.Clone(s.Categories),
		Subcategories: make(map[string][]string, len(s.Subcategories)),
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	for k, v := range s.Subcategories {
		out.Subcategories[k] = slices.Clone(v)
	}
	return out
}

// recompute rebuilds every derived field from the items.
func (s *State) recompute() {
	budget, actual := decimal.Zero, decimal.Zero
	for i := range s.Items {
		s.Items[i] = s.Items[i].Normalized()
		budget = budget.Add(s.Items[i].Amount)
		actual = actual.Add(s.Items[i].Actual)
	}
	s.TotalBudget = budget
	s.TotalActual = actual
	s.TotalVariance = actual.Sub(budget)
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the ledger state. It is safe for concurrent use; every
// operation is applied atomically and none of them fail.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty ledger seeded with the default taxonomy.
func NewStore() *Store {
	return NewStoreWithTaxonomy(DefaultCategories(), DefaultSubcategories())
}

// NewStoreWithTaxonomy creates an empty ledger with the given taxonomy.
func NewStoreWithTaxonomy(categories []string, subcategories map[string][]string) *Store {
	st := State{
		Items:         []Item{},
		Categories:    slices.Clone(categories),
		Subcategories: make(map[string][]string, len(subcategories)),
	}
	for k, v := range subcategories {
		st.Subcategories[k] = slices.Clone(v)
	}
	st.recompute()
	return &Store{state: st}
}

// State returns a consistent snapshot of the ledger.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Len returns the number of line items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Items)
}

// AddItem appends a line item. Any caller-supplied variance is replaced.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = append(s.state.Items, item)
	s.state.recompute()
}

// UpdateItem replaces the item whose ID matches. An unknown ID leaves the
// items untouched.
func (s *Store) UpdateItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Items {
		if s.state.Items[i].ID == item.ID {
			s.state.Items[i] = item
		}
	}
	s.state.recompute()
}

// DeleteItem removes the item with the given ID if present.
func (s *Store) DeleteItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = slices.DeleteFunc(s.state.Items, func(it Item) bool {
		return it.ID == id
	})
	s.state.recompute()
}

// ReplaceAll installs a new item collection.
func (s *Store) ReplaceAll(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = slices.Clone(items)
	if s.state.Items == nil {
		s.state.Items = []Item{}
	}
	s.state.recompute()
}

// AddCategory appends a category name and gives it an empty subcategory
// list. Names are not de-duplicated; adding an existing name again resets
// its subcategories.
func (s *Store) AddCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = append(s.state.Categories, name)
	s.state.Subcategories[name] = []string{}
}

// AddSubcategory appends sub to the category's list, creating the list if
// the category has none.
func (s *Store) AddSubcategory(category, sub string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Subcategories[category] = append(s.state.Subcategories[category], sub)
}
