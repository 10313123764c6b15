// Package dates parses the date expressions accepted by --from, --to and
// the other date flags.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// "7d ago", "2w ago", "3mo ago", "1y ago"
var agoPattern = regexp.MustCompile(`^(\d+)\s*(y|mo|w|d|h)\s*ago$`)

// "in 30d", "in 1mo"
var inPattern = regexp.MustCompile(`^in\s+(\d+)\s*(y|mo|w|d|h)$`)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// Parse turns s into a time relative to now. Accepted forms:
//
//	2024-03-01, 2024-03-01T10:00:00Z
//	today, yesterday, tomorrow
//	7d ago, 2w ago, 3mo ago, 1y ago, 6h ago
//	in 30d, in 1mo
//	monday, last friday, next tue
//
// Day-granular forms resolve to midnight in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	input := strings.ToLower(raw)
	switch input {
	case "now":
		return now, nil
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), nil
	}

	if m := agoPattern.FindStringSubmatch(input); m != nil {
		return shift(now, m[1], m[2], -1)
	}
	if m := inPattern.FindStringSubmatch(input); m != nil {
		return shift(now, m[1], m[2], 1)
	}
	if t, ok := weekday(input, now); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, RFC 3339, or forms like \"7d ago\" and \"last monday\"", raw)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func shift(now time.Time, count, unit string, sign int) (time.Time, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 {
		return time.Time{}, fmt.Errorf("invalid count %q", count)
	}
	n *= sign
	switch unit {
	case "y":
		return midnight(now).AddDate(n, 0, 0), nil
	case "mo":
		return midnight(now).AddDate(0, n, 0), nil
	case "w":
		return midnight(now).AddDate(0, 0, 7*n), nil
	case "d":
		return midnight(now).AddDate(0, 0, n), nil
	case "h":
		return now.Add(time.Duration(n) * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid unit %q", unit)
}

// weekday resolves "monday" and "this monday" to the next occurrence
// including today, "next monday" to the next one after today, and
// "last monday" to the most recent one before today.
func weekday(input string, now time.Time) (time.Time, bool) {
	dir := 0
	switch {
	case strings.HasPrefix(input, "next "):
		dir = 1
	case strings.HasPrefix(input, "last "):
		dir = -1
	}
	if i := strings.IndexByte(input, ' '); i >= 0 {
		input = strings.TrimSpace(input[i+1:])
	}
	wd, ok := weekdays[input]
	if !ok {
		return time.Time{}, false
	}

	base := midnight(now)
	if dir < 0 {
		delta := (int(base.Weekday()) - int(wd) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return base.AddDate(0, 0, -delta), true
	}
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	if dir > 0 && delta == 0 {
		delta = 7
	}
	return base.AddDate(0, 0, delta), true
}
