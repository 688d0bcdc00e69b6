package timeparse

import (
	"errors"
	"testing"
	"time"
)

func TestParseClockHour(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"8:00 AM", 8.0},
		{"08:00 AM", 8.0},
		{"5:30 PM", 17.5},
		{"12:00 AM", 0.0},
		{"12:00 PM", 12.0},
		{"17:30", 17.5},
		{"", 0.0},
		{"   ", 0.0},
	}
	for _, c := range cases {
		got, err := ParseClockHour(c.in)
		if err != nil {
			t.Fatalf("ParseClockHour(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseClockHour(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseClockHourInvalid(t *testing.T) {
	_, err := ParseClockHour("noon")
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
}

func TestParseRecordStrictBothShapes(t *testing.T) {
	withDay, err := ParseRecordStrict("Monday - 01/01/2024 - 08:00 AM")
	if err != nil {
		t.Fatalf("ParseRecordStrict with day: %v", err)
	}
	legacy, err := ParseRecordStrict("01/01/2024 - 08:00 AM")
	if err != nil {
		t.Fatalf("ParseRecordStrict legacy: %v", err)
	}
	if !withDay.Equal(legacy) {
		t.Fatalf("shapes disagree: %v vs %v", withDay, legacy)
	}
	if withDay.Weekday() != time.Monday || withDay.Hour() != 8 {
		t.Fatalf("unexpected parse result: %v", withDay)
	}
}

func TestParseRecordStrictRejectsGarbage(t *testing.T) {
	if _, err := ParseRecordStrict("not a record"); !errors.Is(err, ErrInvalidRecordFormat) {
		t.Fatalf("expected ErrInvalidRecordFormat, got %v", err)
	}
}

func TestParseRecordToleratesLabel(t *testing.T) {
	labeled, err := ParseRecord("Monday - 01/01/2024 - 08:00 AM (Time In)")
	if err != nil {
		t.Fatalf("ParseRecord labeled: %v", err)
	}
	plain, err := ParseRecord("Monday - 01/01/2024 - 08:00 AM")
	if err != nil {
		t.Fatalf("ParseRecord plain: %v", err)
	}
	if !labeled.Equal(plain) {
		t.Fatalf("label changed the parse: %v vs %v", labeled, plain)
	}
}

func TestParseRecordFallbackRelocatesDate(t *testing.T) {
	got, err := ParseRecord("shift A - Monday - 01/01/2024 - 08:00 AM")
	if err != nil {
		t.Fatalf("ParseRecord fallback: %v", err)
	}
	if got.Day() != 1 || got.Month() != time.January || got.Hour() != 8 {
		t.Fatalf("unexpected fallback parse: %v", got)
	}
}

func TestParseRecordNoDate(t *testing.T) {
	if _, err := ParseRecord("Monday - morning - 08:00 AM"); !errors.Is(err, ErrMissingDateInRecord) {
		t.Fatalf("expected ErrMissingDateInRecord, got %v", err)
	}
}

func TestStripLabel(t *testing.T) {
	in := "Monday - 01/01/2024 - 08:00 AM (Time In)"
	want := "Monday - 01/01/2024 - 08:00 AM"
	if got := StripLabel(in); got != want {
		t.Fatalf("StripLabel = %q, want %q", got, want)
	}
	if got := StripLabel(want); got != want {
		t.Fatalf("StripLabel on unlabeled changed it: %q", got)
	}
}

func TestDayIndexing(t *testing.T) {
	if DayIndex("Monday") != 0 || DayIndex("Sunday") != 6 {
		t.Fatalf("DayIndex mapping wrong: Monday=%d Sunday=%d", DayIndex("Monday"), DayIndex("Sunday"))
	}
	// Unknown names degrade to Monday rather than failing.
	if DayIndex("Funday") != 0 {
		t.Fatalf("unknown day should default to 0, got %d", DayIndex("Funday"))
	}
	if WeekdayIndex(time.Monday) != 0 || WeekdayIndex(time.Sunday) != 6 {
		t.Fatalf("WeekdayIndex mapping wrong")
	}
}

func TestFormatting(t *testing.T) {
	ts, err := ParseRecord("Monday - 01/01/2024 - 08:05 AM")
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if got := FormatDateWithDay(ts); got != "Monday - 01/01/2024" {
		t.Fatalf("FormatDateWithDay = %q", got)
	}
	if got := FormatDate(ts); got != "01/01/2024" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatClock(ts); got != "08:05 AM" {
		t.Fatalf("FormatClock = %q", got)
	}
	if got := ClockHour(ts); got != 8.0+5.0/60.0 {
		t.Fatalf("ClockHour = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("02/01/2024")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Weekday() != time.Tuesday {
		t.Fatalf("02/01/2024 should be a Tuesday, got %v", d.Weekday())
	}
	if _, err := ParseDate("2024-01-02"); err == nil {
		t.Fatalf("expected error for ISO date")
	}
}
