// Package match scores punch records against schedule windows and
// picks the best-fitting window per record.
package match

import (
	"math"
	"time"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

// Scoring thresholds, in fractional hours. These are review policy,
// not physics; tests probe the exact boundaries.
const (
	ExactProximityHours = 0.08 // ~5 minutes
	NearProximityHours  = 0.5
	LooseProximityHours = 2.0
	FarLimitHours       = 3.0
	OvertimeGraceHours  = 0.25
)

const farDampenFactor = 0.5

// Flags are the per-record observations collected while scoring. A
// record can look like an exact time-in for one window and an overtime
// candidate for another; flags accumulate across all windows.
type Flags struct {
	ExactTimeIn       bool
	ExactTimeOut      bool
	OvertimeCandidate bool
}

// Score rates how well a timestamp fits one window. Day hits score +1
// each, boundary proximity adds +3/+2/+1 (5min/30min/2h), a weekday
// strictly inside a multi-day span adds +2, and a record more than 3h
// from both boundaries has its score halved rather than zeroed.
func Score(w domain.Window, t time.Time) (float64, Flags) {
	day := timeparse.DayName(t)
	hour := timeparse.ClockHour(t)

	var score float64
	var flags Flags

	if day == w.StartDay {
		score++
		switch diff := math.Abs(hour - w.StartHour); {
		case diff <= ExactProximityHours:
			score += 3
			flags.ExactTimeIn = true
		case diff <= NearProximityHours:
			score += 2
		case diff <= LooseProximityHours:
			score++
		}
	}

	if day == w.EndDay {
		score++
		switch diff := math.Abs(hour - w.EndHour); {
		case diff <= ExactProximityHours:
			score += 3
			flags.ExactTimeOut = true
		case diff <= NearProximityHours:
			score += 2
		case diff <= LooseProximityHours:
			score++
		}
		if hour > w.EndHour+OvertimeGraceHours {
			flags.OvertimeCandidate = true
		}
	}

	if w.StartDay != w.EndDay && dayStrictlyBetween(w, timeparse.WeekdayIndex(t.Weekday())) {
		score += 2
	}

	if score > 0 {
		endHour := w.EndHour
		if w.Overnight && day == w.EndDay {
			endHour += 24.0
		}
		minDiff := math.Min(math.Abs(hour-w.StartHour), math.Abs(hour-endHour))
		if minDiff > FarLimitHours {
			score *= farDampenFactor
		}
	}

	return score, flags
}

// Best returns the index of the window with the strictly highest
// score, or -1 when nothing scores above zero. Ties keep the first
// window in input order, so a caller-supplied ordering is the
// tie-break policy. Flags accumulate across every window examined.
func Best(windows []domain.Window, t time.Time) (int, float64, Flags) {
	best := -1
	var bestScore float64
	var flags Flags

	for i, w := range windows {
		score, f := Score(w, t)
		flags.ExactTimeIn = flags.ExactTimeIn || f.ExactTimeIn
		flags.ExactTimeOut = flags.ExactTimeOut || f.ExactTimeOut
		flags.OvertimeCandidate = flags.OvertimeCandidate || f.OvertimeCandidate
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best, bestScore, flags
}

// FindApplicable returns the index of the first window whose span
// contains the timestamp, or -1. Same-day containment is inclusive on
// both boundaries; overnight containment accepts the start day at or
// after the start time, the end day at or before the end time, and any
// weekday strictly between.
func FindApplicable(windows []domain.Window, t time.Time) int {
	dayIdx := timeparse.WeekdayIndex(t.Weekday())
	hour := timeparse.ClockHour(t)

	for i, w := range windows {
		if !w.Overnight {
			if dayIdx == w.StartDayIdx && hour >= w.StartHour && hour <= w.EndHour {
				return i
			}
			continue
		}
		if dayIdx == w.StartDayIdx && hour >= w.StartHour {
			return i
		}
		if dayIdx == w.EndDayIdx && hour <= w.EndHour {
			return i
		}
		if w.DaysSpan > 1 && dayStrictlyBetween(w, dayIdx) {
			return i
		}
	}
	return -1
}

func dayStrictlyBetween(w domain.Window, dayIdx int) bool {
	if w.EndDayIdx > w.StartDayIdx {
		return dayIdx > w.StartDayIdx && dayIdx < w.EndDayIdx
	}
	// Wraps through the end of the week.
	return dayIdx > w.StartDayIdx || dayIdx < w.EndDayIdx
}
