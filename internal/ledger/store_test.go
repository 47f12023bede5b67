// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func item(id string, amount, actual int64) Item {
	return Item{
		ID:          id,
		Category:    CategoryProduction,
		Subcategory: "Equipment",
		Description: "line " + id,
		Amount:      d(amount),
		Actual:      d(actual),
		Date:        "2024-03-01",
	}
}

func assertTotals(t *testing.T, st State) {
	t.Helper()
	budget, actual := decimal.Zero, decimal.Zero
	for _, it := range st.Items {
		budget = budget.Add(it.Amount)
		actual = actual.Add(it.Actual)
		if !it.Variance.Equal(it.Actual.Sub(it.Amount)) {
			t.Errorf("item %s variance = %s, want %s", it.ID, it.Variance, it.Actual.Sub(it.Amount))
		}
	}
	if !st.TotalBudget.Equal(budget) {
		t.Errorf("TotalBudget = %s, want %s", st.TotalBudget, budget)
	}
	if !st.TotalActual.Equal(actual) {
		t.Errorf("TotalActual = %s, want %s", st.TotalActual, actual)
	}
	if !st.TotalVariance.Equal(actual.Sub(budget)) {
		t.Errorf("TotalVariance = %s, want %s", st.TotalVariance, actual.Sub(budget))
	}
}

func TestNewStore_SeedTaxonomy(t *testing.T) {
	st := NewStore().State()

	assert.Equal(t, []string{"Above the Line", "Production", "Post-Production", "Other", "Contingency"}, st.Categories)
	assert.Equal(t, []string{"Director", "Producer", "Writer", "Cast", "Crew"}, st.Subcategories["Above the Line"])
	assert.Equal(t, []string{"Editing", "Visual Effects", "Sound", "Music", "Color Grading"}, st.Subcategories["Post-Production"])
	assert.Equal(t, []string{"Emergency Fund", "Overages"}, st.Subcategories["Contingency"])
	assert.Empty(t, st.Items)
	assert.True(t, st.TotalBudget.IsZero())
}

func TestAddItem_RecomputesTotalsAndVariance(t *testing.T) {
	s := NewStore()
	bad := item("a", 1000, 1200)
	bad.Variance = d(999999)
	s.AddItem(bad)
	s.AddItem(item("b", 500, 100))

	st := s.State()
	require.Len(t, st.Items, 2)
	assert.True(t, st.Items[0].Variance.Equal(d(200)), "caller variance must be replaced")
	assert.True(t, st.TotalBudget.Equal(d(1500)))
	assert.True(t, st.TotalActual.Equal(d(1300)))
	assert.True(t, st.TotalVariance.Equal(d(-200)))
	assertTotals(t, st)
}

func TestUpdateItem(t *testing.T) {
	tests := []struct {
		name       string
		update     Item
		wantAmount int64
	}{
		{"existing id", item("a", 3000, 0), 3000},
		{"unknown id", item("zzz", 3000, 0), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.AddItem(item("a", 1000, 0))

			s.UpdateItem(tt.update)

			st := s.State()
			require.Len(t, st.Items, 1)
			assert.Equal(t, "a", st.Items[0].ID)
			assert.True(t, st.Items[0].Amount.Equal(d(tt.wantAmount)))
			assertTotals(t, st)
			assert.True(t, st.TotalBudget.Equal(d(tt.wantAmount)))
		})
	}
}

func TestDeleteItem(t *testing.T) {
	s := NewStore()
	s.AddItem(item("a", 100, 50))
	s.AddItem(item("b", 200, 0))

	s.DeleteItem("missing")
	assert.Equal(t, 2, s.Len())

	s.DeleteItem("a")
	st := s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "b", st.Items[0].ID)
	assertTotals(t, st)
}

func TestReplaceAll(t *testing.T) {
	s := NewStore()
	s.AddItem(item("old", 1, 1))

	s.ReplaceAll([]Item{item("x", 10, 20), item("y", 30, 5)})
	st := s.State()
	require.Len(t, st.Items, 2)
	assert.True(t, st.TotalBudget.Equal(d(40)))
	assertTotals(t, st)

	s.ReplaceAll(nil)
	st = s.State()
	assert.NotNil(t, st.Items)
	assert.Empty(t, st.Items)
	assert.True(t, st.TotalVariance.IsZero())
}

func TestAddCategory_NoDedupAndResetsSubcategories(t *testing.T) {
	s := NewStore()
	s.AddCategory("Marketing")
	s.AddSubcategory("Marketing", "Trailers")
	s.AddCategory("Marketing")

	st := s.State()
	count := 0
	for _, c := range st.Categories {
		if c == "Marketing" {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{}, st.Subcategories["Marketing"])
}

func TestAddSubcategory_MissingCategoryList(t *testing.T) {
	s := NewStore()
	s.AddSubcategory("Catering", "Craft Services")
	s.AddSubcategory(CategoryOther, "Publicity")

	st := s.State()
	assert.Equal(t, []string{"Craft Services"}, st.Subcategories["Catering"])
	assert.False(t, st.HasCategory("Catering"))
	assert.Equal(t, "Publicity", st.Subcategories[CategoryOther][len(st.Subcategories[CategoryOther])-1])
}

func TestState_IsSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem(item("a", 100, 0))

	st := s.State()
	st.Items[0].Description = "mutated"
	st.Subcategories[CategoryProduction][0] = "mutated"
	st.Categories[0] = "mutated"

	fresh := s.State()
	assert.Equal(t, "line a", fresh.Items[0].Description)
	assert.Equal(t, "Equipment", fresh.Subcategories[CategoryProduction][0])
	assert.Equal(t, CategoryAboveTheLine, fresh.Categories[0])
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(Item{ID: NewID(), Amount: d(10), Actual: d(3)})
			_ = s.State()
		}()
	}
	wg.Wait()

	st := s.State()
	assert.Len(t, st.Items, 50)
	assert.True(t, st.TotalBudget.Equal(d(500)))
	assertTotals(t, st)
}

func TestFindItem(t *testing.T) {
	s := NewStore()
	s.AddItem(item("a", 1, 0))

	got, ok := s.State().FindItem("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = s.State().FindItem("b")
	assert.False(t, ok)
}
