// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package schedule

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TYPES
// =============================================================================

// Status is the progress state of a scheduled event.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

const (
	// DateLayout is the ISO calendar date of an event.
	DateLayout = "2006-01-02"

	// TimeLayout is the 24-hour start time of an event.
	TimeLayout = "15:04"

	// MissingFieldsMessage is shown when title or date is blank.
	MissingFieldsMessage = "Please fill in required fields"
)

// Item is one production schedule event.
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
	Crew     []string `json:"crew"`
	Notes    string   `json:"notes"`
	Status   Status   `json:"status"`
}

// ValidationError describes one invalid schedule field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks required fields and formats.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return &ValidationError{Field: "title", Message: MissingFieldsMessage}
	}
	if strings.TrimSpace(i.Date) == "" {
		return &ValidationError{Field: "date", Message: MissingFieldsMessage}
	}
	if _, err := time.Parse(DateLayout, i.Date); err != nil {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", i.Date)}
	}
	if i.Time != "" {
		if _, err := time.Parse(TimeLayout, i.Time); err != nil {
			return &ValidationError{Field: "time", Message: fmt.Sprintf("invalid time %q, expected HH:MM", i.Time)}
		}
	}
	if i.Status != "" && !i.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", i.Status)}
	}
	return nil
}

// =============================================================================
// LIST
// =============================================================================

// List holds the schedule of one session. It is safe for concurrent use.
type List struct {
	mu    sync.RWMutex
	items []Item
}

// NewList returns a list holding a copy of items.
func NewList(items ...Item) *List {
	l := &List{}
	for _, it := range items {
		l.items = append(l.items, cloneItem(it))
	}
	return l
}

// Add validates item, fills in an ID and default status, and appends it.
// The stored item is returned.
func (l *List) Add(item Item) (Item, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = StatusPlanned
	}
	if item.Crew == nil {
		item.Crew = []string{}
	}

	l.mu.Lock()
	l.items = append(l.items, cloneItem(item))
	l.mu.Unlock()

	return item, nil
}

// Items returns the events sorted by date, earliest first. Events on the
// same date keep insertion order.
func (l *List) Items() []Item {
	l.mu.RLock()
	out := make([]Item, 0, len(l.items))
	for _, it := range l.items {
		out = append(out, cloneItem(it))
	}
	l.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b Item) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// Len returns the number of events.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func cloneItem(it Item) Item {
	it.Crew = slices.Clone(it.Crew)
	if it.Crew == nil {
		it.Crew = []string{}
	}
	return it
}

// =============================================================================
// DEMO DATA
// =============================================================================

// DefaultItems returns the demo schedule a new session starts with.
func DefaultItems() []Item {
	return []Item{
		{
			ID:       "1",
			Title:    "Principal Photography - Day 1",
			Date:     "2024-03-15",
			Time:     "08:00",
			Location: "Studio A",
			Crew:     []string{"Director", "DP", "Camera Op", "Sound Mixer"},
			Notes:    "First day of principal photography. All equipment checked.",
			Status:   StatusPlanned,
		},
		{
			ID:       "2",
			Title:    "Location Scouting",
			Date:     "2024-03-10",
			Time:     "10:00",
			Location: "Downtown Area",
			Crew:     []string{"Location Manager", "DP", "Producer"},
			Notes:    "Scouting for exterior shots",
			Status:   StatusCompleted,
		},
		{
			ID:       "3",
			Title:    "Casting Call",
			Date:     "2024-03-05",
			Time:     "14:00",
			Location: "Casting Office",
			Crew:     []string{"Casting Director", "Director", "Producer"},
			Notes:    "Final casting decisions",
			Status:   StatusCompleted,
		},
	}
}
