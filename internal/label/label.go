// Package label implements the basic and overtime labeling engines:
// each takes a batch of raw record strings plus a schedule (or several)
// and returns the records tagged Time In / Break Out / Break In /
// Time Out, with the overtime engine additionally splitting off
// Overtime Start/End segments. The richer schedule-validating engine
// lives in package review.
package label

import (
	"sort"
	"strings"
	"time"

	"punchcard/internal/domain"
	"punchcard/internal/match"
	"punchcard/internal/timeparse"
)

// Validity windows around the schedule boundaries, in hours.
const (
	EarlyThresholdHours = 3.0  // earliest acceptable clock-in before start
	LateThresholdHours  = 2.0  // latest acceptable clock-in after start
	EarlyOutHours       = 1.0  // earliest acceptable clock-out before end
	GracePeriodHours    = 0.25 // clock-outs this far past end still count as on time
)

// row pairs an output row with its timestamp so results can be ordered
// chronologically regardless of labeling order.
type row struct {
	out domain.SimpleLabeled
	t   time.Time
}

func finish(rows []row) []domain.SimpleLabeled {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Before(rows[j].t) })
	out := make([]domain.SimpleLabeled, len(rows))
	for i, r := range rows {
		out[i] = r.out
	}
	return out
}

// displayWeekday returns the record's own day label when present, or
// regenerates "Day - DD/MM/YYYY" from the parsed timestamp.
func displayWeekday(orig string, t time.Time) string {
	if parts := strings.Split(orig, " - "); len(parts) == 3 {
		return parts[0]
	}
	return timeparse.FormatDateWithDay(t)
}

func parseSorted(recordedTimes []string) ([]domain.Record, error) {
	recs := make([]domain.Record, 0, len(recordedTimes))
	for _, orig := range recordedTimes {
		t, err := timeparse.ParseRecord(orig)
		if err != nil {
			return nil, err
		}
		recs = append(recs, domain.Record{Record: orig, Time: t, Matched: -1})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Time.Before(recs[j].Time) })
	return recs, nil
}

// normalizedHour positions a record on the schedule's time axis: the
// time of day plus 24h for each day past the schedule's start day.
func normalizedHour(w domain.Window, r domain.Record) float64 {
	dayOffset := (r.DayIdx() - w.StartDayIdx + 7) % 7
	return r.ClockHour() + 24.0*float64(dayOffset)
}

// engineFunc is a single-schedule engine, used by the multi-schedule
// dispatcher.
type engineFunc func(recordedTimes []string, schedule domain.Schedule) ([]domain.SimpleLabeled, error)

// dispatch groups records by the first schedule window containing
// them, falling back to a start-day match and then to the first
// schedule, runs the engine per group, and merges the labeled output
// chronologically.
func dispatch(recordedTimes []string, schedules []domain.Schedule, engine engineFunc) ([]domain.SimpleLabeled, error) {
	if len(recordedTimes) == 0 {
		return []domain.SimpleLabeled{}, nil
	}
	if len(schedules) == 0 {
		schedules = []domain.Schedule{domain.DefaultSchedule()}
	}
	windows, err := domain.ResolveAll(schedules)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]string)
	var order []int
	for _, orig := range recordedTimes {
		t, err := timeparse.ParseRecord(orig)
		if err != nil {
			return nil, err
		}

		idx := match.FindApplicable(windows, t)
		if idx < 0 {
			day := timeparse.DayName(t)
			for i, w := range windows {
				if w.StartDay == day {
					idx = i
					break
				}
			}
			if idx < 0 {
				idx = 0
			}
		}

		if _, seen := groups[idx]; !seen {
			order = append(order, idx)
		}
		groups[idx] = append(groups[idx], orig)
	}

	var rows []row
	for _, idx := range order {
		labeled, err := engine(groups[idx], schedules[idx])
		if err != nil {
			return nil, err
		}
		for _, l := range labeled {
			t, err := timeparse.ParseRecord(l.Record)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row{out: l, t: t})
		}
	}
	return finish(rows), nil
}
