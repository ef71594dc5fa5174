package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestNormalize(t *testing.T) {
	n := New(bangkok(t))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso passthrough", "2025-01-15", "2025-01-15"},
		{"iso with time suffix", "2025-01-15T10:00:00", "2025-01-15"},
		{"buddhist iso", "2568-01-15", "2025-01-15"},
		{"buddhist iso with time", "2568-01-15T09:30:00", "2025-01-15"},
		{"slash dmy", "15/01/2025", "2025-01-15"},
		{"slash ymd", "2025/01/15", "2025-01-15"},
		{"dash dmy", "15-01-2025", "2025-01-15"},
		{"dot dmy", "15.01.2025", "2025-01-15"},
		{"buddhist slash dmy", "15/01/2568", "2025-01-15"},
		{"single digit segments", "5/3/2025", "2025-03-05"},
		{"surrounding whitespace", "  2025-01-15  ", "2025-01-15"},
		{"month name", "Jan 15, 2025", "2025-01-15"},
		{"empty", "", ""},
		{"garbage with time marker", "someday 10:00", "someday"},
		{"garbage passthrough", "not-a-date-at", "not-a-date-at"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New(bangkok(t))

	for _, input := range []string{"2568-01-15", "15/01/2568", "2025-06-01T12:00:00"} {
		once := n.Normalize(input)
		assert.Equal(t, once, n.Normalize(once), "input %q", input)
	}
}

func TestNormalizeTimeBuddhistEra(t *testing.T) {
	loc := bangkok(t)
	n := New(loc)

	wall := time.Date(2568, time.January, 15, 10, 0, 0, 0, loc)
	assert.Equal(t, "2025-01-15", n.NormalizeTime(wall))

	gregorian := time.Date(2025, time.January, 15, 10, 0, 0, 0, loc)
	assert.Equal(t, "2025-01-15", n.NormalizeTime(gregorian))
}

func TestIsPast(t *testing.T) {
	loc := bangkok(t)
	now := time.Date(2025, time.June, 10, 13, 0, 0, 0, loc)
	n := NewWithNow(loc, func() time.Time { return now })

	tests := []struct {
		name string
		date string
		slot string
		want bool
	}{
		{"earlier date", "2025-06-09", "17:30", true},
		{"later date", "2025-06-11", "10:00", false},
		{"today earlier slot", "2025-06-10", "11:30", true},
		{"today exact slot is past", "2025-06-10", "13:00", true},
		{"today later slot", "2025-06-10", "14:30", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.IsPast(tc.date, tc.slot))
		})
	}
}

func TestTodayAndNowClock(t *testing.T) {
	loc := bangkok(t)
	now := time.Date(2025, time.June, 10, 9, 5, 0, 0, loc)
	n := NewWithNow(loc, func() time.Time { return now })

	assert.Equal(t, "2025-06-10", n.Today())
	assert.Equal(t, "09:05", n.NowClock())
}
