package label

import (
	"math"

	"punchcard/internal/domain"
	"punchcard/internal/segment"
)

// otInfo is the per-record arithmetic the overtime engine works from.
type otInfo struct {
	norm          float64
	startDiff     float64
	endDiff       float64
	closerToStart bool
	validStart    bool
	validEnd      bool
	overtime      bool
}

// Overtime labels a batch of records against a single schedule and
// splits each shift into a regular segment and an overtime segment at
// the schedule end plus grace. Regular segments with three or more
// records are anchored to the punches closest to the schedule
// boundaries; overtime segments are labeled Overtime Start/End with
// alternating breaks between.
func Overtime(recordedTimes []string, schedule domain.Schedule) ([]domain.SimpleLabeled, error) {
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

	endHour := w.AdjustedEndHour()
	info := make([]otInfo, len(recs))
	for i, r := range recs {
		norm := overtimeNormalizedHour(w, r)
		in := otInfo{
			norm:      norm,
			startDiff: norm - w.StartHour,
			endDiff:   norm - endHour,
		}
		in.closerToStart = math.Abs(in.startDiff) <= math.Abs(in.endDiff)
		in.validStart = in.startDiff >= -EarlyThresholdHours && in.startDiff <= LateThresholdHours
		in.validEnd = in.endDiff >= -EarlyOutHours && in.endDiff <= GracePeriodHours
		in.overtime = norm > endHour+GracePeriodHours
		info[i] = in
	}

	var rows []row
	add := func(i int, label string) {
		r := recs[i]
		rows = append(rows, row{
			out: domain.SimpleLabeled{
				Record:  r.Record,
				Weekday: displayWeekday(r.Record, r.Time),
				Label:   label,
			},
			t: r.Time,
		})
	}

	for _, shift := range segment.SplitOvertime(recs, w) {
		var regular, overtime []int
		for _, i := range shift {
			if info[i].overtime {
				overtime = append(overtime, i)
			} else {
				regular = append(regular, i)
			}
		}

		labelRegularSegment(regular, info, add)

		if len(overtime) > 0 {
			add(overtime[0], domain.LabelOvertimeStart)
			for pos := 1; pos < len(overtime)-1; pos++ {
				if pos%2 == 1 {
					add(overtime[pos], domain.LabelBreakOut)
				} else {
					add(overtime[pos], domain.LabelBreakIn)
				}
			}
			if len(overtime) > 1 {
				add(overtime[len(overtime)-1], domain.LabelOvertimeEnd)
			}
		}
	}

	return finish(rows), nil
}

// OvertimeMulti runs the overtime engine across several schedules.
func OvertimeMulti(recordedTimes []string, schedules []domain.Schedule) ([]domain.SimpleLabeled, error) {
	return dispatch(recordedTimes, schedules, Overtime)
}

// overtimeNormalizedHour places a record on the schedule axis with
// overnight awareness: start-day punches keep their clock hour,
// end-day punches shift forward by the day span, intermediate days by
// their offset from the start day.
func overtimeNormalizedHour(w domain.Window, r domain.Record) float64 {
	hour := r.ClockHour()
	if !w.Overnight {
		return hour
	}
	switch {
	case r.DayIdx() == w.StartDayIdx:
		return hour
	case r.DayIdx() == w.EndDayIdx:
		days := w.DaysSpan
		if days == 0 {
			days = 1
		}
		return hour + 24.0*float64(days)
	default:
		offset := (r.DayIdx() - w.StartDayIdx + 7) % 7
		return hour + 24.0*float64(offset)
	}
}

// labelRegularSegment labels the non-overtime slice of a shift.
func labelRegularSegment(seg []int, info []otInfo, add func(int, string)) {
	switch n := len(seg); {
	case n == 0:
	case n == 1:
		i := seg[0]
		switch {
		case info[i].validEnd && !info[i].validStart:
			add(i, domain.LabelTimeOut)
		case info[i].validStart && !info[i].validEnd:
			add(i, domain.LabelTimeIn)
		case info[i].closerToStart:
			add(i, domain.LabelTimeIn)
		default:
			add(i, domain.LabelTimeOut)
		}
	case n == 2:
		a, b := seg[0], seg[1]
		switch {
		case info[a].validStart && info[b].validEnd:
			add(a, domain.LabelTimeIn)
			add(b, domain.LabelTimeOut)
		case info[a].validEnd && info[b].validStart:
			// Unusual: an end-shaped punch before a start-shaped one.
			add(a, domain.LabelTimeOut)
			add(b, domain.LabelTimeIn)
		case info[a].closerToStart && !info[b].closerToStart:
			add(a, domain.LabelTimeIn)
			add(b, domain.LabelTimeOut)
		case !info[a].closerToStart && info[b].closerToStart:
			add(a, domain.LabelTimeOut)
			add(b, domain.LabelTimeIn)
		default:
			add(a, domain.LabelTimeIn)
			add(b, domain.LabelTimeOut)
		}
	default:
		// Anchor on the punches closest to each boundary.
		startPos, endPos := 0, 0
		for pos, i := range seg {
			if math.Abs(info[i].startDiff) < math.Abs(info[seg[startPos]].startDiff) {
				startPos = pos
			}
			if math.Abs(info[i].endDiff) < math.Abs(info[seg[endPos]].endDiff) {
				endPos = pos
			}
		}
		if startPos == endPos {
			// One punch wins both boundaries; take the next-best end.
			endPos = -1
			for pos, i := range seg {
				if pos == startPos {
					continue
				}
				if endPos < 0 || math.Abs(info[i].endDiff) < math.Abs(info[seg[endPos]].endDiff) {
					endPos = pos
				}
			}
		}

		firstLabel, lastLabel := domain.LabelTimeIn, domain.LabelTimeOut
		firstPos, lastPos := startPos, endPos
		if startPos > endPos {
			firstPos, lastPos = endPos, startPos
			firstLabel, lastLabel = lastLabel, firstLabel
		}

		add(seg[firstPos], firstLabel)
		add(seg[lastPos], lastLabel)

		breakState := 0
		for pos, i := range seg {
			if pos == firstPos || pos == lastPos {
				continue
			}
			if breakState%2 == 0 {
				add(i, domain.LabelBreakOut)
			} else {
				add(i, domain.LabelBreakIn)
			}
			breakState++
		}
	}
}
