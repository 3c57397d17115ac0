package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, 0, 0, time.Local)
}

func TestNormalize(t *testing.T) {
	raw := time.Date(2024, time.June, 12, 9, 30, 45, 123456789, time.Local)

	got := Normalize(raw)

	assert.Equal(t, 0, got.Second())
	assert.Equal(t, 0, got.Nanosecond())
	assert.True(t, got.Equal(at(12, 9, 30)))
	assert.True(t, Normalize(at(12, 9, 30).Add(59*time.Second)).Equal(got), "same minute should compare equal")
}

func TestNormalize_RepeatedDaylightSavingHour(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 01:30:30 EST, the second 01:30 of the fall-back night
	in := time.Date(2024, time.November, 3, 6, 30, 30, 0, time.UTC).In(newYork)

	got := Normalize(in)

	assert.Equal(t, 30*time.Second, in.Sub(got))
	_, inOffset := in.Zone()
	_, gotOffset := got.Zone()
	assert.Equal(t, inOffset, gotOffset)
	assert.Equal(t, in.UnixMilli()-30_000, got.UnixMilli())
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		hours   int
		minutes int
	}{
		{"zero length", at(12, 9, 0), 0, 0},
		{"hours and minutes", at(12, 9, 15), 2, 30},
		{"minutes over sixty", at(12, 9, 0), 1, 90},
		{"crosses midnight", at(12, 23, 30), 1, 0},
		{"multi day", at(12, 8, 0), 50, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := NewInterval(tt.start, tt.hours, tt.minutes)

			want := tt.start.Add(time.Duration(tt.hours*60+tt.minutes) * time.Minute)
			assert.True(t, iv.End().Equal(want), "end = %v, want %v", iv.End(), want)
			assert.True(t, iv.Start().Equal(tt.start))
			assert.Equal(t, tt.hours, iv.Hours())
			assert.Equal(t, tt.minutes, iv.Minutes(), "minutes are stored as given")
		})
	}
}

func TestNewInterval_TruncatesSeconds(t *testing.T) {
	start := time.Date(2024, time.June, 12, 10, 0, 30, 500, time.Local)

	iv := NewInterval(start, 1, 0)

	assert.True(t, iv.Start().Equal(at(12, 10, 0)))
	assert.True(t, iv.End().Equal(at(12, 11, 0)))
}

func TestWholeDay(t *testing.T) {
	iv := WholeDay(time.Date(2024, time.June, 12, 15, 42, 17, 0, time.Local))

	assert.True(t, iv.Start().Equal(at(12, 0, 0)))
	assert.True(t, iv.End().Equal(at(12, 23, 59)), "ends one minute before midnight")
	assert.Equal(t, 12, iv.End().Day())
	assert.Equal(t, 23, iv.Hours())
	assert.Equal(t, 59, iv.Minutes())

	for _, inside := range []time.Time{at(12, 0, 0), at(12, 0, 1), at(12, 12, 0), at(12, 23, 58), at(12, 23, 59)} {
		assert.True(t, iv.During(inside), "%v should be during the day", inside)
	}
	for _, outside := range []time.Time{at(11, 23, 59), at(13, 0, 0), at(13, 12, 0)} {
		assert.False(t, iv.During(outside), "%v should not be during the day", outside)
	}
}

func TestInterval_BoundaryPredicates(t *testing.T) {
	iv := NewInterval(at(12, 10, 0), 1, 30)
	start, end := iv.Start(), iv.End()

	assert.True(t, iv.Before(end), "before is inclusive of end")
	assert.True(t, iv.Before(end.Add(time.Minute)))
	assert.False(t, iv.Before(end.Add(-time.Minute)))

	assert.True(t, iv.After(start), "after is inclusive of start")
	assert.True(t, iv.After(start.Add(-time.Minute)))
	assert.False(t, iv.After(start.Add(time.Minute)))

	assert.True(t, iv.During(start))
	assert.True(t, iv.During(end))
	assert.True(t, iv.During(at(12, 11, 0)))
	assert.False(t, iv.During(start.Add(-time.Minute)))
	assert.False(t, iv.During(end.Add(time.Minute)))
}

func TestInterval_SetStart(t *testing.T) {
	iv := NewInterval(at(12, 10, 0), 2, 15)

	iv.SetStart(time.Date(2024, time.June, 14, 8, 0, 59, 0, time.Local))

	assert.True(t, iv.Start().Equal(at(14, 8, 0)))
	assert.True(t, iv.End().Equal(at(14, 10, 15)))
	assert.Equal(t, 2, iv.Hours())
	assert.Equal(t, 15, iv.Minutes())
}

func TestInterval_SetEnd(t *testing.T) {
	tests := []struct {
		name        string
		end         time.Time
		wantHours   int
		wantMinutes int
	}{
		{"later end", at(12, 13, 45), 3, 45},
		{"same as start", at(12, 10, 0), 0, 0},
		{"next day", at(13, 11, 5), 25, 5},
		{"seconds dropped", time.Date(2024, time.June, 12, 10, 20, 59, 0, time.Local), 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := NewInterval(at(12, 10, 0), 1, 0)

			iv.SetEnd(tt.end)

			assert.Equal(t, tt.wantHours, iv.Hours())
			assert.Equal(t, tt.wantMinutes, iv.Minutes())
			assert.True(t, iv.End().Equal(Normalize(tt.end)))
		})
	}
}

func TestInterval_SetHours(t *testing.T) {
	iv := NewInterval(at(12, 10, 0), 1, 10)

	iv.SetHours(4)

	assert.Equal(t, 4, iv.Hours())
	assert.Equal(t, 10, iv.Minutes())
	assert.True(t, iv.End().Equal(at(12, 14, 10)))
}

func TestInterval_SetMinutes(t *testing.T) {
	iv := NewInterval(at(12, 10, 0), 1, 0)

	iv.SetMinutes(45)

	assert.Equal(t, 1, iv.Hours())
	assert.Equal(t, 45, iv.Minutes())
	assert.True(t, iv.End().Equal(at(12, 11, 45)))
}

func TestInterval_SetMinutesRebuildsDurationFromEnd(t *testing.T) {
	iv := NewInterval(at(12, 10, 0), 1, 0)

	iv.SetMinutes(90)

	assert.True(t, iv.End().Equal(at(12, 12, 30)))
	assert.Equal(t, 2, iv.Hours())
	assert.Equal(t, 30, iv.Minutes())
}

func TestInterval_RecomputeDirections(t *testing.T) {
	iv := NewInterval(at(12, 9, 0), 0, 30)

	iv.hours = 2
	iv.RecomputeEnd()
	assert.True(t, iv.End().Equal(at(12, 11, 30)))

	iv.end = at(12, 9, 5)
	iv.RecomputeDuration()
	assert.Equal(t, 0, iv.Hours())
	assert.Equal(t, 5, iv.Minutes())
}

func TestInterval_Clone(t *testing.T) {
	original := NewInterval(at(12, 10, 0), 1, 75)

	clone := original.Clone()
	require.True(t, clone.Equal(original))
	assert.True(t, clone.Start().Equal(original.Start()))
	assert.True(t, clone.End().Equal(original.End()))
	assert.Equal(t, original.Hours(), clone.Hours())
	assert.Equal(t, original.Minutes(), clone.Minutes())

	clone.SetHours(5)
	assert.Equal(t, 1, original.Hours(), "changing the clone must not affect the original")
	assert.False(t, clone.Equal(original))
}
