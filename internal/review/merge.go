package review

import (
	"sort"
	"strings"
	"time"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

// Merge collapses labeled records into one display row per calendar
// date: records sorted by time and rendered as
// "08:00 AM (Time In) | 05:00 PM (Time Out)". Rows come back in date
// order. A record whose date segment cannot be parsed fails the call.
func Merge(records []domain.LabeledRecord) ([]domain.MergedRow, error) {
	if len(records) == 0 {
		return []domain.MergedRow{}, nil
	}

	type group struct {
		day     string
		date    time.Time
		records []domain.LabeledRecord
	}
	groups := make(map[string]*group)
	var dates []string

	for _, rec := range records {
		parts := strings.Split(rec.Record, " - ")
		var day, date string
		if len(parts) == 3 {
			day, date = parts[0], parts[1]
		} else {
			date = parts[0]
		}
		dt, err := timeparse.ParseDate(date)
		if err != nil {
			return nil, err
		}
		if day == "" {
			day = dt.Weekday().String()
		}

		g, ok := groups[date]
		if !ok {
			g = &group{day: day, date: dt}
			groups[date] = g
			dates = append(dates, date)
		}
		g.records = append(g.records, rec)
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return groups[dates[i]].date.Before(groups[dates[j]].date)
	})

	rows := make([]domain.MergedRow, 0, len(dates))
	for _, date := range dates {
		g := groups[date]
		sort.SliceStable(g.records, func(i, j int) bool { return g.records[i].Time.Before(g.records[j].Time) })

		times := make([]string, 0, len(g.records))
		for _, rec := range g.records {
			parts := strings.Split(rec.Record, " - ")
			timePart := parts[len(parts)-1]
			if i := strings.Index(timePart, " ("); i >= 0 {
				timePart = timePart[:i]
			}
			times = append(times, timePart+" ("+rec.Label+")")
		}

		rows = append(rows, domain.MergedRow{
			Date:    date,
			Day:     g.day,
			Times:   strings.Join(times, " | "),
			Records: g.records,
		})
	}
	return rows, nil
}
