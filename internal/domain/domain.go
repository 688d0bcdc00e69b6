// Package domain holds the shared attendance model: weekly recurring
// schedules, parsed punch records, labeled records and merged review
// rows. Everything here is a plain value; no state survives a
// processing call.
package domain

import (
	"fmt"
	"strings"
	"time"

	"punchcard/internal/timeparse"
)

var ErrMissingSchedule = fmt.Errorf("no schedules provided")
var ErrEmptyInput = fmt.Errorf("no records provided")

const DefaultStartDay = "Monday"
const DefaultStartTime = "8:00 AM"
const DefaultEndTime = "5:00 PM"

// Record labels assigned by the engines.
const (
	LabelTimeIn          = "Time In"
	LabelTimeInEarly     = "Time In (Early)"
	LabelTimeInLate      = "Time In (Late)"
	LabelBreakOut        = "Break Out"
	LabelBreakIn         = "Break In"
	LabelTimeOut         = "Time Out"
	LabelTimeOutOvertime = "Time Out (Overtime)"
	LabelOvertimeStart   = "Overtime Start"
	LabelOvertimeEnd     = "Overtime End"
)

// Schedule is one weekly recurring work window as configured by the
// caller. All fields are strings; blanks fall back to the documented
// defaults (8:00 AM - 5:00 PM, end day = start day).
type Schedule struct {
	StartDay  string `yaml:"start_day" json:"start_day"`
	StartTime string `yaml:"start_time" json:"start_time"`
	EndDay    string `yaml:"end_day" json:"end_day"`
	EndTime   string `yaml:"end_time" json:"end_time"`
}

// DefaultSchedule is used when a caller supplies no schedule at all.
func DefaultSchedule() Schedule {
	return Schedule{
		StartDay:  DefaultStartDay,
		StartTime: DefaultStartTime,
		EndDay:    DefaultStartDay,
		EndTime:   DefaultEndTime,
	}
}

// WithDefaults fills blank fields with the default values.
func (s Schedule) WithDefaults() Schedule {
	if isBlank(s.StartDay) {
		s.StartDay = DefaultStartDay
	}
	if isBlank(s.StartTime) {
		s.StartTime = DefaultStartTime
	}
	if isBlank(s.EndDay) {
		s.EndDay = s.StartDay
	}
	if isBlank(s.EndTime) {
		s.EndTime = DefaultEndTime
	}
	return s
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Key identifies a schedule for grouping purposes.
func (s Schedule) Key() string {
	s = s.WithDefaults()
	return s.StartDay + "_" + s.StartTime + "_" + s.EndDay + "_" + s.EndTime
}

func (s Schedule) String() string {
	s = s.WithDefaults()
	return fmt.Sprintf("%s %s to %s %s", s.StartDay, s.StartTime, s.EndDay, s.EndTime)
}

// Window is a schedule resolved to numeric form: fractional start/end
// hours and Monday-based day indices, with the overnight shape
// precomputed. EndHour is the raw time of day; use AdjustedEndHour for
// comparisons that must land after StartHour.
type Window struct {
	Schedule
	StartDayIdx int
	EndDayIdx   int
	StartHour   float64
	EndHour     float64
	DaysSpan    int
	Overnight   bool
}

// Resolve parses a schedule's day and time fields. Blank fields take
// their defaults; a malformed time fails the whole call.
func Resolve(s Schedule) (Window, error) {
	s = s.WithDefaults()

	startHour, err := timeparse.ParseClockHour(s.StartTime)
	if err != nil {
		return Window{}, err
	}
	endHour, err := timeparse.ParseClockHour(s.EndTime)
	if err != nil {
		return Window{}, err
	}

	w := Window{
		Schedule:    s,
		StartDayIdx: timeparse.DayIndex(s.StartDay),
		EndDayIdx:   timeparse.DayIndex(s.EndDay),
		StartHour:   startHour,
		EndHour:     endHour,
	}
	w.DaysSpan = (w.EndDayIdx - w.StartDayIdx + 7) % 7
	w.Overnight = w.DaysSpan > 0 || (w.DaysSpan == 0 && endHour <= startHour)
	return w, nil
}

// ResolveAll resolves a schedule list, substituting the default
// schedule when the list is empty.
func ResolveAll(schedules []Schedule) ([]Window, error) {
	if len(schedules) == 0 {
		schedules = []Schedule{DefaultSchedule()}
	}
	windows := make([]Window, 0, len(schedules))
	for _, s := range schedules {
		w, err := Resolve(s)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// AdjustedEndHour is the end boundary shifted past the start boundary
// for overnight windows: a Mon 10PM - Tue 6AM window ends at hour 30.
func (w Window) AdjustedEndHour() float64 {
	if !w.Overnight {
		return w.EndHour
	}
	days := w.DaysSpan
	if days == 0 {
		days = 1
	}
	return w.EndHour + 24.0*float64(days)
}

// Duration is the shift length in hours.
func (w Window) Duration() float64 {
	return w.AdjustedEndHour() - w.StartHour
}

// SameDay reports whether the window starts and ends on the same
// weekday name (a same-day window can still be overnight when its end
// time is numerically at or before its start time).
func (w Window) SameDay() bool {
	return w.StartDay == w.EndDay
}

// Record is one parsed punch with the working flags the matcher,
// segmenter and labelers progressively fill in.
type Record struct {
	Record string
	Time   time.Time

	// Matcher output.
	Matched           int // index into the window list, -1 when unmatched
	MatchScore        float64
	ExactTimeIn       bool
	ExactTimeOut      bool
	OvertimeCandidate bool

	// Labeler working flags.
	Early    bool
	Late     bool
	Overtime bool

	// Reviewer round-trip state; a confirmed overtime record is never
	// re-flagged.
	ValidatedOvertime bool
	OriginalLabel     string
}

// DayIdx is the record's weekday index, Monday=0.
func (r Record) DayIdx() int {
	return timeparse.WeekdayIndex(r.Time.Weekday())
}

// ClockHour is the record's time of day as a fractional hour.
func (r Record) ClockHour() float64 {
	return timeparse.ClockHour(r.Time)
}

// DateString is the record's calendar date in DD/MM/YYYY form.
func (r Record) DateString() string {
	return timeparse.FormatDate(r.Time)
}

// LabeledRecord is a record with its assigned shift label.
type LabeledRecord struct {
	Record            string    `json:"record"`
	Time              time.Time `json:"-"`
	Label             string    `json:"label"`
	ValidatedOvertime bool      `json:"validated_overtime"`
}

// SimpleLabeled is the lighter result row returned by the basic and
// overtime engines: the record, its display weekday, and the label.
type SimpleLabeled struct {
	Record  string `json:"record"`
	Weekday string `json:"weekday"`
	Label   string `json:"label"`
}

// MergedRow aggregates one calendar date's labeled records into a
// single display line.
type MergedRow struct {
	Date    string          `json:"date"`
	Day     string          `json:"day"`
	Times   string          `json:"times"`
	Records []LabeledRecord `json:"records"`
}

// Issue category prefixes emitted by the validator. An issue is a
// plain string, e.g. "Late arrival: Monday - 01/01/2024 - 09:30 AM".
const (
	IssueDayDateMismatch = "Day/date mismatch"
	IssueEarlyArrival    = "Early arrival"
	IssueLateArrival     = "Late arrival"
	IssueEarlyDeparture  = "Early departure"
	IssueOvertime        = "Overtime"
)
