package domain

import (
	"time"
)

const (
	millisPerHour   = int64(time.Hour / time.Millisecond)
	millisPerMinute = int64(time.Minute / time.Millisecond)
)

// Normalize returns t with its seconds and sub-second components zeroed.
// All instants stored by the domain pass through here so that two instants
// captured within the same minute compare equal. Truncation works on the
// absolute instant, so a time inside a repeated daylight-saving hour keeps
// its offset.
func Normalize(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// Interval is a span of time defined by a start instant and a duration in
// hours and minutes. The end instant is derived from those fields.
type Interval struct {
	start   time.Time
	end     time.Time
	hours   int
	minutes int
}

// NewInterval creates an interval starting at start that lasts the given
// hours and minutes. Minutes are stored as given even when they exceed 59;
// they still roll over correctly into the end instant.
func NewInterval(start time.Time, hours, minutes int) Interval {
	iv := Interval{
		start:   Normalize(start),
		hours:   hours,
		minutes: minutes,
	}
	iv.RecomputeEnd()
	return iv
}

// WholeDay creates an interval covering the calendar day of the given
// instant: it starts at 00:00 and lasts 23h59m, so it ends at 23:59.
func WholeDay(day time.Time) Interval {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return NewInterval(midnight, 23, 59)
}

// Start returns the first instant of the interval.
func (iv Interval) Start() time.Time {
	return iv.start
}

// End returns the last instant of the interval.
func (iv Interval) End() time.Time {
	return iv.end
}

// Hours returns the hour component of the duration.
func (iv Interval) Hours() int {
	return iv.hours
}

// Minutes returns the minute component of the duration.
func (iv Interval) Minutes() int {
	return iv.minutes
}

// Duration returns the elapsed time between start and end.
func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// SetStart moves the interval and recomputes the end from the current duration.
func (iv *Interval) SetStart(start time.Time) {
	iv.start = Normalize(start)
	iv.RecomputeEnd()
}

// SetEnd changes the end and recomputes the duration from the elapsed time.
// The end is authoritative: any previous duration is discarded.
func (iv *Interval) SetEnd(end time.Time) {
	iv.end = Normalize(end)
	iv.RecomputeDuration()
}

// SetHours changes the hour component of the duration and recomputes the end.
func (iv *Interval) SetHours(hours int) {
	iv.hours = hours
	iv.RecomputeEnd()
}

// SetMinutes changes the minute component of the duration, recomputes the
// end and then rebuilds both duration fields from start and end.
func (iv *Interval) SetMinutes(minutes int) {
	iv.minutes = minutes
	iv.RecomputeEnd()
	iv.RecomputeDuration()
}

// RecomputeEnd derives end = start + hours + minutes.
func (iv *Interval) RecomputeEnd() {
	iv.end = iv.start.
		Add(time.Duration(iv.hours) * time.Hour).
		Add(time.Duration(iv.minutes) * time.Minute)
}

// RecomputeDuration derives hours and minutes from end - start using floor
// division of the elapsed milliseconds.
func (iv *Interval) RecomputeDuration() {
	elapsed := iv.end.Sub(iv.start).Milliseconds()
	iv.hours = int(elapsed / millisPerHour)
	iv.minutes = int((elapsed % millisPerHour) / millisPerMinute)
}

// Before reports whether the interval ends at or before t.
func (iv Interval) Before(t time.Time) bool {
	return !iv.end.After(t)
}

// After reports whether the interval starts at or after t.
func (iv Interval) After(t time.Time) bool {
	return !iv.start.Before(t)
}

// During reports whether t lies within the interval, both bounds included.
func (iv Interval) During(t time.Time) bool {
	return !t.Before(iv.start) && !t.After(iv.end)
}

// Clone returns an independent copy of the interval.
func (iv Interval) Clone() Interval {
	return Interval{
		start:   iv.start,
		end:     iv.end,
		hours:   iv.hours,
		minutes: iv.minutes,
	}
}

// Equal reports whether both intervals have the same bounds and duration fields.
func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) &&
		iv.end.Equal(other.end) &&
		iv.hours == other.hours &&
		iv.minutes == other.minutes
}
