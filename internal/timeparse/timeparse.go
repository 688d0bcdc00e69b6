// Package timeparse handles the punch-clock string formats: schedule
// clock times ("8:00 AM" or "17:30") and record timestamps
// ("Day - DD/MM/YYYY - HH:MM AM/PM", or the legacy form without the
// leading day).
package timeparse

import (
	"fmt"
	"log"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = fmt.Errorf("invalid time format")
var ErrInvalidRecordFormat = fmt.Errorf("invalid record format")
var ErrMissingDateInRecord = fmt.Errorf("no date in record")

const clockLayout12 = "3:04 PM"
const clockLayout24 = "15:04"
const dateLayout = "02/01/2006"
const recordLayout = "02/01/2006 - 3:04 PM"

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseClockHour parses a schedule time like "6:00 AM" or "18:00" into a
// fractional hour in [0, 24). A blank string means midnight.
func ParseClockHour(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0.0, nil
	}
	for _, layout := range []string{clockLayout12, clockLayout24} {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Hour()) + float64(t.Minute())/60.0, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// ParseRecordStrict parses a record timestamp in either supported shape:
//
//	"DD/MM/YYYY - HH:MM AM/PM"        (legacy)
//	"Day - DD/MM/YYYY - HH:MM AM/PM"
//
// The leading day name is redundant with the date and is ignored here;
// cross-checking it is the validator's job.
func ParseRecordStrict(record string) (time.Time, error) {
	parts := strings.Split(record, " - ")
	var datePart, timePart string
	switch len(parts) {
	case 2:
		datePart, timePart = parts[0], parts[1]
	case 3:
		datePart, timePart = parts[1], parts[2]
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecordFormat, record)
	}
	t, err := time.Parse(recordLayout, datePart+" - "+timePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecordFormat, record)
	}
	return t, nil
}

// ParseRecord parses a record timestamp, tolerating a trailing
// parenthesized label (as produced by merged review rows) and stray
// segments around the date. Strict parsing is tried first; the fallback
// re-locates the date token by shape and re-validates the clock token.
func ParseRecord(record string) (time.Time, error) {
	clean := StripLabel(record)

	t, err := ParseRecordStrict(clean)
	if err == nil {
		return t, nil
	}

	parts := strings.Split(clean, " - ")

	// Find a D/M/Y-shaped segment.
	datePart := ""
	for _, part := range parts {
		if strings.Count(part, "/") == 2 {
			datePart = strings.TrimSpace(part)
			break
		}
	}
	if datePart == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingDateInRecord, record)
	}

	// The clock is in the last segment; drop any embedded label.
	timePart := strings.TrimSpace(parts[len(parts)-1])
	if i := strings.Index(timePart, " ("); i >= 0 {
		timePart = strings.TrimSpace(timePart[:i])
	}
	fields := strings.Fields(timePart)
	if len(fields) < 2 {
		return time.Time{}, fmt.Errorf("%w: no clock time in %q", ErrInvalidRecordFormat, record)
	}
	clock := fields[0] + " " + fields[1]
	if _, err := time.Parse(clockLayout12, clock); err != nil {
		return time.Time{}, fmt.Errorf("%w: bad clock time %q in %q", ErrInvalidRecordFormat, clock, record)
	}

	t, err = time.Parse(recordLayout, datePart+" - "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (%v)", ErrInvalidRecordFormat, record, err)
	}
	return t, nil
}

// StripLabel removes a trailing parenthesized label, e.g.
// "Monday - 01/01/2024 - 08:00 AM (Time In)" -> "Monday - 01/01/2024 - 08:00 AM".
func StripLabel(record string) string {
	if i := strings.LastIndex(record, " ("); i >= 0 && strings.HasSuffix(record, ")") {
		return record[:i]
	}
	return record
}

// DayIndex converts a full weekday name to an index, Monday=0 through
// Sunday=6. Unknown names degrade to Monday; callers needing strict
// validation must check the name themselves.
func DayIndex(name string) int {
	for i, d := range dayNames {
		if d == name {
			return i
		}
	}
	log.Printf("invalid day name %q, defaulting to Monday", name)
	return 0
}

// WeekdayIndex maps a time.Weekday onto the same Monday=0 indexing.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// DayName returns the full weekday name of t, e.g. "Monday".
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ClockHour returns t's time of day as a fractional hour.
func ClockHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// FormatDateWithDay renders t as "Day - DD/MM/YYYY".
func FormatDateWithDay(t time.Time) string {
	return t.Weekday().String() + " - " + t.Format(dateLayout)
}

// FormatDate renders just the DD/MM/YYYY part.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatClock renders t's clock time as "HH:MM AM/PM".
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM")
}

// ParseDate parses a bare DD/MM/YYYY date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecordFormat, s)
	}
	return t, nil
}
