package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// KindHabitTrackers is the key of the serialized tracker list.
const KindHabitTrackers = "habit trackers"

// HabitTracker records each time a habit was completed, in the order the
// completions were added. Duplicates are allowed.
type HabitTracker struct {
	name        string
	completions []time.Time
}

// NewHabitTracker creates a tracker with no completions.
func NewHabitTracker(name string) *HabitTracker {
	return &HabitTracker{name: name}
}

// Name returns the tracker name.
func (h *HabitTracker) Name() string {
	return h.name
}

// Len returns the number of recorded completions.
func (h *HabitTracker) Len() int {
	return len(h.completions)
}

// Contains reports whether the exact minute t was recorded.
func (h *HabitTracker) Contains(t time.Time) bool {
	n := Normalize(t)
	return slices.ContainsFunc(h.completions, func(c time.Time) bool {
		return c.Equal(n)
	})
}

// Completions returns a copy of the completions in insertion order.
func (h *HabitTracker) Completions() []time.Time {
	return slices.Clone(h.completions)
}

// AddCompletion appends a completion at t.
func (h *HabitTracker) AddCompletion(t time.Time) {
	h.completions = append(h.completions, Normalize(t))
}

// MarkDone records a completion at now.
func (h *HabitTracker) MarkDone(now time.Time) {
	h.AddCompletion(now)
}

// UnmarkDone removes the most recently added completion. It does nothing
// when there are none.
func (h *HabitTracker) UnmarkDone() {
	if len(h.completions) > 0 {
		h.completions = h.completions[:len(h.completions)-1]
	}
}

// LastCompletion returns the most recently added completion, which is not
// necessarily the latest by time.
func (h *HabitTracker) LastCompletion() (time.Time, bool) {
	if len(h.completions) == 0 {
		return time.Time{}, false
	}
	return h.completions[len(h.completions)-1], true
}

// IsDoneToday reports whether the most recently added completion falls on
// the calendar day of now.
func (h *HabitTracker) IsDoneToday(now time.Time) bool {
	last, ok := h.LastCompletion()
	return isToday(now, last, ok)
}

type completionRecord struct {
	Time *int64 `json:"time"`
}

type habitTrackerRecord struct {
	Name          *string            `json:"name"`
	TimesComplete []completionRecord `json:"times complete"`
}

// MarshalJSON encodes the tracker in the saved schedule format.
func (h *HabitTracker) MarshalJSON() ([]byte, error) {
	times := make([]completionRecord, len(h.completions))
	for i, c := range h.completions {
		millis := c.UnixMilli()
		times[i] = completionRecord{Time: &millis}
	}
	return json.Marshal(habitTrackerRecord{
		Name:          &h.name,
		TimesComplete: times,
	})
}

// UnmarshalJSON decodes a tracker from the saved schedule format.
func (h *HabitTracker) UnmarshalJSON(data []byte) error {
	var rec habitTrackerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return malformed("habit tracker", err)
	}
	if err := requireFields("habit tracker",
		field{"name", rec.Name != nil},
		field{"times complete", rec.TimesComplete != nil},
	); err != nil {
		return err
	}
	tracker := NewHabitTracker(*rec.Name)
	for _, c := range rec.TimesComplete {
		if c.Time == nil {
			return requireFields("habit tracker completion", field{"time", false})
		}
		tracker.AddCompletion(time.UnixMilli(*c.Time))
	}
	*h = *tracker
	return nil
}

// HabitTrackers is an unordered list of habit trackers.
type HabitTrackers struct {
	trackers []*HabitTracker
}

// NewHabitTrackers creates an empty list.
func NewHabitTrackers() *HabitTrackers {
	return &HabitTrackers{}
}

// Add appends a tracker.
func (l *HabitTrackers) Add(tracker *HabitTracker) {
	l.trackers = append(l.trackers, tracker)
}

// Get returns the tracker at index. The index must be in [0, Len()).
func (l *HabitTrackers) Get(index int) *HabitTracker {
	return l.trackers[index]
}

// Remove deletes the tracker at index. The index must be in [0, Len()).
func (l *HabitTrackers) Remove(index int) {
	l.trackers = slices.Delete(l.trackers, index, index+1)
}

// Len returns the number of trackers.
func (l *HabitTrackers) Len() int {
	return len(l.trackers)
}

// Contains reports whether this exact tracker is in the list.
func (l *HabitTrackers) Contains(tracker *HabitTracker) bool {
	return slices.Contains(l.trackers, tracker)
}

// Find returns the index of the first tracker with the given name, or -1.
func (l *HabitTrackers) Find(name string) int {
	return slices.IndexFunc(l.trackers, func(t *HabitTracker) bool {
		return t.name == name
	})
}

// All returns a copy of the trackers in insertion order.
func (l *HabitTrackers) All() []*HabitTracker {
	return slices.Clone(l.trackers)
}

// MarshalJSON encodes the list as {"habit trackers": [...]}.
func (l *HabitTrackers) MarshalJSON() ([]byte, error) {
	trackers := l.trackers
	if trackers == nil {
		trackers = []*HabitTracker{}
	}
	return json.Marshal(map[string][]*HabitTracker{KindHabitTrackers: trackers})
}
