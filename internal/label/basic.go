package label

import (
	"punchcard/internal/domain"
	"punchcard/internal/segment"
)

// Basic labels a batch of records against a single schedule: the first
// record of each shift is Time In, the last is Time Out, and
// intermediate punches alternate Break Out / Break In starting with
// Break Out. A lone record becomes Time Out when it sits inside the
// valid end window, otherwise Time In.
func Basic(recordedTimes []string, schedule domain.Schedule) ([]domain.SimpleLabeled, error) {
	w, err := domain.Resolve(schedule)
	if err != nil {
		return nil, err
	}

	recs, err := parseSorted(recordedTimes)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []domain.SimpleLabeled{}, nil
	}

	var rows []row
	add := func(r domain.Record, label string) {
		rows = append(rows, row{
			out: domain.SimpleLabeled{
				Record:  r.Record,
				Weekday: displayWeekday(r.Record, r.Time),
				Label:   label,
			},
			t: r.Time,
		})
	}

	for _, shift := range segment.SplitBasic(recs, w) {
		switch n := len(shift); {
		case n == 1:
			r := recs[shift[0]]
			if basicValidEnd(w, r) {
				add(r, domain.LabelTimeOut)
			} else {
				add(r, domain.LabelTimeIn)
			}
		case n == 2:
			add(recs[shift[0]], domain.LabelTimeIn)
			add(recs[shift[1]], domain.LabelTimeOut)
		default:
			add(recs[shift[0]], domain.LabelTimeIn)
			for i := 1; i < n-1; i++ {
				if i%2 == 1 {
					add(recs[shift[i]], domain.LabelBreakOut)
				} else {
					add(recs[shift[i]], domain.LabelBreakIn)
				}
			}
			add(recs[shift[n-1]], domain.LabelTimeOut)
		}
	}

	return finish(rows), nil
}

// BasicMulti runs the basic engine across several schedules, grouping
// records by best containing schedule first.
func BasicMulti(recordedTimes []string, schedules []domain.Schedule) ([]domain.SimpleLabeled, error) {
	return dispatch(recordedTimes, schedules, Basic)
}

func basicValidEnd(w domain.Window, r domain.Record) bool {
	diff := normalizedHour(w, r) - w.AdjustedEndHour()
	return diff >= -EarlyOutHours && diff <= GracePeriodHours
}
