package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Years above this are taken as Buddhist-era and shifted back 543 years.
	buddhistYearFloor = 2400
	buddhistOffset    = 543
)

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	separatorRe = regexp.MustCompile(`[/\-.]`)

	// Last-resort layouts for inputs that match none of the structured forms.
	genericLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
	}
)

// Normalizer converts heterogeneous date inputs into canonical YYYY-MM-DD
// strings in the shop's timezone, correcting Buddhist-era years. The clock
// is injectable so past-slot checks are testable.
type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc, now: time.Now}
}

// NewWithNow builds a normalizer with a fixed clock, for tests.
func NewWithNow(loc *time.Location, now func() time.Time) *Normalizer {
	return &Normalizer{loc: loc, now: now}
}

// Normalize returns the canonical date for any supported input shape. It
// never fails: unparseable input degrades to the original string with any
// trailing time marker stripped.
func (n *Normalizer) Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	// Already ISO-shaped: fix the era and truncate to the date part.
	if isoPrefixRe.MatchString(s) {
		year, _ := strconv.Atoi(s[:4])
		if year > buddhistYearFloor {
			return fmt.Sprintf("%04d-%s", year-buddhistOffset, s[5:10])
		}
		return s[:10]
	}

	// Slash/dash/dot separated: field order inferred from the first segment.
	if parts := separatorRe.Split(s, -1); len(parts) == 3 {
		if out, ok := n.fromParts(parts); ok {
			return out
		}
	}

	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return n.NormalizeTime(t)
		}
	}

	// Fallback, not an error: hand back the date-looking prefix.
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

func (n *Normalizer) fromParts(parts []string) (string, bool) {
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", false
		}
		nums[i] = v
	}

	var year, month, day int
	if len(strings.TrimSpace(parts[0])) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
	}
	if year > buddhistYearFloor {
		year -= buddhistOffset
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, n.loc)
	return t.Format(dateLayout), true
}

// NormalizeTime localizes a time value and formats its canonical date,
// correcting a Buddhist-era wall clock.
func (n *Normalizer) NormalizeTime(t time.Time) string {
	t = t.In(n.loc)
	if t.Year() > buddhistYearFloor {
		t = t.AddDate(-buddhistOffset, 0, 0)
	}
	return t.Format(dateLayout)
}

// Now returns the current instant in the shop timezone.
func (n *Normalizer) Now() time.Time {
	return n.now().In(n.loc)
}

// Today returns the server's current canonical date.
func (n *Normalizer) Today() string {
	return n.NormalizeTime(n.now())
}

// NowClock returns the server's current HH:MM in the shop timezone.
func (n *Normalizer) NowClock() string {
	return n.now().In(n.loc).Format(timeLayout)
}

// IsPast reports whether the slot is at or before the server's current
// time. Dates strictly in the future are never past; on the current date
// the zero-padded HH:MM labels compare lexically, inclusive of now.
func (n *Normalizer) IsPast(date, slot string) bool {
	today := n.Today()
	if date > today {
		return false
	}
	if date < today {
		return true
	}
	return slot <= n.NowClock()
}
