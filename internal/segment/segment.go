// Package segment groups sorted punch records into shift instances.
// Two strategies exist: gap-based splitting for the basic and overtime
// engines, and schedule-anchored two-pass grouping for the reviewing
// engine. Both leave the record order inside each shift untouched.
package segment

import (
	"math"
	"sort"
	"time"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

// Split policy constants, in hours. Distinct per engine on purpose;
// existing callers depend on either behavior.
const (
	GapProximityHours  = 2.0  // start/end proximity that marks a day change as a shift boundary
	OvertimeSlackHours = 4.0  // lookahead slack past the shift duration (overtime engine)
	PairToleranceHours = 1.0  // boundary tolerance for greedy overnight pairing
	OvernightGapHours  = 12.0 // max intra-shift gap under an overnight schedule
	RegularGapHours    = 4.0  // max intra-shift gap otherwise
)

func dateDiffDays(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// SplitBasic partitions records for one window, returning groups of
// indices into the input slice. Multi-day windows split on a day
// change only when the new record sits near the start boundary or the
// previous one sat near the end boundary; same-day windows split on
// any date change.
func SplitBasic(records []domain.Record, w domain.Window) [][]int {
	var shifts [][]int
	var current []int

	for i, rec := range records {
		if i == 0 {
			current = append(current, i)
			continue
		}
		prev := records[i-1]
		newShift := false
		if diff := dateDiffDays(prev.Time, rec.Time); diff > 0 {
			if w.Overnight {
				nearStart := math.Abs(rec.ClockHour()-w.StartHour) < GapProximityHours
				prevNearEnd := math.Abs(prev.ClockHour()-w.EndHour) < GapProximityHours
				newShift = nearStart || prevNearEnd
			} else {
				newShift = true
			}
		}
		if newShift {
			shifts = append(shifts, current)
			current = []int{i}
		} else {
			current = append(current, i)
		}
	}
	if len(current) > 0 {
		shifts = append(shifts, current)
	}
	return shifts
}

// SplitOvertime partitions records for one window with an
// overnight-aware extended lookahead: consecutive dates stay in the
// same shift while within the shift duration plus slack, and a
// start-day record followed by an end-day record in the right time
// ranges continues the shift.
func SplitOvertime(records []domain.Record, w domain.Window) [][]int {
	var shifts [][]int
	var current []int

	for i, rec := range records {
		if i == 0 {
			current = append(current, i)
			continue
		}
		prev := records[i-1]
		dateDiff := dateDiffDays(prev.Time, rec.Time)

		var sameShift bool
		if w.Overnight {
			timeDiff := rec.Time.Sub(prev.Time).Hours()
			switch {
			case dateDiff <= 1 && timeDiff < w.Duration()+OvertimeSlackHours:
				sameShift = true
			case dateDiff == 0:
				sameShift = true
			case prev.DayIdx() == w.StartDayIdx && prev.ClockHour() >= w.StartHour &&
				rec.DayIdx() == w.EndDayIdx && rec.ClockHour() <= w.EndHour:
				sameShift = true
			}
		} else {
			sameShift = dateDiff == 0
		}

		if sameShift {
			current = append(current, i)
		} else {
			shifts = append(shifts, current)
			current = []int{i}
		}
	}
	if len(current) > 0 {
		shifts = append(shifts, current)
	}
	return shifts
}

func effectiveSpan(w domain.Window) int {
	if w.Overnight && w.DaysSpan == 0 {
		return 1
	}
	return w.DaysSpan
}

// SplitAnchored groups records for the reviewing engine. The first
// pass greedily pairs a start-boundary record with the nearest later
// end-boundary record on the expected calendar date for every
// overnight window, consuming matched records; the second pass walks
// the leftovers chronologically. All shifts are pooled and sorted by
// first-record timestamp. Consumed state lives in a local index array
// so the passes stay auditable; the only mutation that escapes is the
// re-pinned Matched window on greedily paired records.
func SplitAnchored(records []domain.Record, windows []domain.Window) [][]int {
	consumed := make([]bool, len(records))

	// Longest overnight spans pair first.
	order := make([]int, len(windows))
	for i := range windows {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return effectiveSpan(windows[order[a]]) > effectiveSpan(windows[order[b]])
	})

	var paired [][]int
	for _, wi := range order {
		w := windows[wi]
		if !w.Overnight {
			continue
		}

		var starts []int
		for i, rec := range records {
			if consumed[i] {
				continue
			}
			if timeparse.DayName(rec.Time) == w.StartDay &&
				math.Abs(rec.ClockHour()-w.StartHour) <= PairToleranceHours {
				starts = append(starts, i)
			}
		}

		for _, si := range starts {
			start := records[si]
			expectedEnd := start.Time.AddDate(0, 0, effectiveSpan(w))

			endIdx := -1
			for j := si + 1; j < len(records); j++ {
				if consumed[j] {
					continue
				}
				rec := records[j]
				if timeparse.DayName(rec.Time) == w.EndDay &&
					dateDiffDays(rec.Time, expectedEnd) == 0 &&
					math.Abs(rec.ClockHour()-w.EndHour) <= PairToleranceHours {
					endIdx = j
					break
				}
			}
			if endIdx < 0 {
				continue
			}

			var group []int
			for k := si; k <= endIdx; k++ {
				if consumed[k] {
					continue
				}
				consumed[k] = true
				records[k].Matched = wi
				group = append(group, k)
			}
			if len(group) > 0 {
				paired = append(paired, group)
			}
		}
	}

	// Second pass: walk everything the pairing left behind.
	var shifts [][]int
	var current []int
	currentDate := ""
	currentWindow := -1

	for i, rec := range records {
		if consumed[i] {
			continue
		}

		recDate := rec.DateString()
		recDay := timeparse.DayName(rec.Time)
		matched := rec.Matched
		sameDaySchedule := matched >= 0 && windows[matched].SameDay()

		startNew := false
		switch {
		case len(current) == 0:
			currentWindow = matched
			currentDate = recDate

		case recDate != currentDate:
			startNew = true
			if currentWindow >= 0 && windows[currentWindow].Overnight {
				prev := records[current[len(current)-1]]
				cw := windows[currentWindow]
				if timeparse.DayName(prev.Time) == cw.StartDay && recDay == cw.EndDay &&
					dateDiffDays(prev.Time, rec.Time) <= effectiveSpan(cw) {
					// Valid overnight continuation.
					startNew = false
				}
			}

		case matched != currentWindow:
			if matched >= 0 && currentWindow >= 0 {
				curSameDay := windows[currentWindow].SameDay()
				newSameDay := windows[matched].SameDay()
				if curSameDay == newSameDay {
					// Two different same-day schedules force a split;
					// two different overnight ones do not.
					startNew = curSameDay
				} else {
					startNew = true
				}
			}

		case !sameDaySchedule:
			gap := rec.Time.Sub(records[current[len(current)-1]].Time).Hours()
			threshold := RegularGapHours
			if currentWindow >= 0 && windows[currentWindow].Overnight {
				threshold = OvernightGapHours
			}
			startNew = gap > threshold
		}

		// Same-day schedules never split while still on the same date.
		if sameDaySchedule && len(current) > 0 && recDate == currentDate {
			startNew = false
		}

		if startNew {
			shifts = append(shifts, current)
			current = []int{i}
			currentDate = recDate
			currentWindow = matched
		} else {
			current = append(current, i)
			if currentDate == "" {
				currentDate = recDate
			}
		}
	}
	if len(current) > 0 {
		shifts = append(shifts, current)
	}

	shifts = append(shifts, paired...)
	sort.SliceStable(shifts, func(a, b int) bool {
		return records[shifts[a][0]].Time.Before(records[shifts[b][0]].Time)
	})
	return shifts
}
