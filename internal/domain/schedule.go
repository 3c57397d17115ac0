package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// Kinds of schedules, used as the key of the serialized list.
const (
	KindAppointments = "appointments"
	KindTasks        = "tasks"
)

// Schedule keeps items of one kind in ascending chronological order.
type Schedule[T Item[T]] struct {
	kind  string
	items []T
}

// NewSchedule creates an empty schedule labelled with kind.
func NewSchedule[T Item[T]](kind string) *Schedule[T] {
	return &Schedule[T]{kind: kind}
}

// Kind returns the label of the schedule.
func (s *Schedule[T]) Kind() string {
	return s.kind
}

// Add inserts item and re-sorts the schedule. Items with equal keys keep
// their insertion order.
func (s *Schedule[T]) Add(item T) {
	s.items = append(s.items, item)
	slices.SortStableFunc(s.items, func(a, b T) int {
		return a.Compare(b)
	})
}

// Remove deletes the first stored item equal to item and reports whether one
// was found. For pointer entities equality is identity, so only that exact
// instance is removed.
func (s *Schedule[T]) Remove(item T) bool {
	i := slices.Index(s.items, item)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Get returns the item at index. The index must be in [0, Len()).
func (s *Schedule[T]) Get(index int) T {
	return s.items[index]
}

// Len returns the number of items.
func (s *Schedule[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in chronological order.
func (s *Schedule[T]) Items() []T {
	return slices.Clone(s.items)
}

// TodayView returns a new schedule of the same kind holding only the items
// scheduled on the calendar day of now. The view shares items with s, but
// removing from the view never changes s.
func (s *Schedule[T]) TodayView(now time.Time) *Schedule[T] {
	view := NewSchedule[T](s.kind)
	for _, item := range s.items {
		if item.IsToday(now) {
			view.Add(item)
		}
	}
	return view
}

// MarshalJSON encodes the schedule as {"<kind>": [items...]}.
func (s *Schedule[T]) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(map[string][]T{s.kind: items})
}
