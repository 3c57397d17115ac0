package domain

import (
	"encoding/json"
	"time"
)

// Schedulable is implemented by anything that can say whether it is relevant
// on the calendar day of now.
type Schedulable interface {
	IsToday(now time.Time) bool
}

// Item is the constraint for entities kept in a Schedule. Items are compared
// chronologically by their ordering key and serialize to the saved schema.
type Item[T any] interface {
	comparable
	Schedulable
	json.Marshaler
	Compare(other T) int
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// isToday reports whether t falls on the calendar day of now. An absent
// instant is never today.
func isToday(now time.Time, t time.Time, ok bool) bool {
	if !ok {
		return false
	}
	return WholeDay(now).During(t)
}

// compareInstants orders two instants chronologically.
func compareInstants(a, b time.Time) int {
	switch {
	case a.Equal(b):
		return 0
	case a.Before(b):
		return -1
	default:
		return 1
	}
}
