package match

import (
	"testing"
	"time"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

func window(t *testing.T, startDay, startTime, endDay, endTime string) domain.Window {
	t.Helper()
	w, err := domain.Resolve(domain.Schedule{StartDay: startDay, StartTime: startTime, EndDay: endDay, EndTime: endTime})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return w
}

func ts(t *testing.T, record string) time.Time {
	t.Helper()
	parsed, err := timeparse.ParseRecord(record)
	if err != nil {
		t.Fatalf("ParseRecord(%q): %v", record, err)
	}
	return parsed
}

func TestScoreExactTimeIn(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")

	// 8:02 is within the 5-minute exactness band; the same weekday also
	// counts as an end-day hit without proximity.
	score, flags := Score(w, ts(t, "Monday - 01/01/2024 - 08:02 AM"))
	if score != 5 {
		t.Fatalf("score = %v, want 5", score)
	}
	if !flags.ExactTimeIn || flags.ExactTimeOut {
		t.Fatalf("unexpected flags: %+v", flags)
	}
}

func TestScoreOvertimeCandidate(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")

	// 5:20 PM: near the end boundary and past the overtime grace.
	score, flags := Score(w, ts(t, "Monday - 01/01/2024 - 05:20 PM"))
	if score != 4 {
		t.Fatalf("score = %v, want 4", score)
	}
	if !flags.OvertimeCandidate {
		t.Fatalf("expected overtime candidate: %+v", flags)
	}
}

func TestScoreFarRecordDampened(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")

	// Noon is over 3h from both boundaries; the two day hits are halved.
	score, _ := Score(w, ts(t, "Monday - 01/01/2024 - 12:00 PM"))
	if score != 1 {
		t.Fatalf("score = %v, want 1", score)
	}
}

func TestScoreWrongDay(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	score, _ := Score(w, ts(t, "Tuesday - 02/01/2024 - 08:00 AM"))
	if score != 0 {
		t.Fatalf("score = %v, want 0", score)
	}
}

func TestBestPicksHighestAndKeepsFirstOnTie(t *testing.T) {
	day := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	night := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")

	best, _, _ := Best([]domain.Window{day, night}, ts(t, "Monday - 01/01/2024 - 10:05 PM"))
	if best != 1 {
		t.Fatalf("best = %d, want overnight window", best)
	}

	// Identical windows tie; the first in input order wins.
	best, _, _ = Best([]domain.Window{day, day}, ts(t, "Monday - 01/01/2024 - 08:00 AM"))
	if best != 0 {
		t.Fatalf("tie should keep first window, got %d", best)
	}
}

func TestBestNothingMatches(t *testing.T) {
	day := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	best, score, _ := Best([]domain.Window{day}, ts(t, "Wednesday - 03/01/2024 - 08:00 AM"))
	if best != -1 || score != 0 {
		t.Fatalf("expected no match, got best=%d score=%v", best, score)
	}
}

func TestBestAccumulatesFlagsAcrossWindows(t *testing.T) {
	day := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	night := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")

	// 10:00 PM is exactly the night start but also far past the day
	// window's end; the overtime observation from the day window must
	// survive even though the night window wins.
	_, _, flags := Best([]domain.Window{day, night}, ts(t, "Monday - 01/01/2024 - 10:00 PM"))
	if !flags.ExactTimeIn {
		t.Fatalf("expected exact time-in from the night window: %+v", flags)
	}
	if !flags.OvertimeCandidate {
		t.Fatalf("expected overtime candidate from the day window: %+v", flags)
	}
}

func TestFindApplicableSameDayInclusive(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	windows := []domain.Window{w}

	if FindApplicable(windows, ts(t, "Monday - 01/01/2024 - 08:00 AM")) != 0 {
		t.Fatalf("start boundary should be contained")
	}
	if FindApplicable(windows, ts(t, "Monday - 01/01/2024 - 05:00 PM")) != 0 {
		t.Fatalf("end boundary should be contained")
	}
	if FindApplicable(windows, ts(t, "Monday - 01/01/2024 - 07:59 AM")) != -1 {
		t.Fatalf("before start should not be contained")
	}
}

func TestFindApplicableOvernight(t *testing.T) {
	w := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")
	windows := []domain.Window{w}

	if FindApplicable(windows, ts(t, "Monday - 01/01/2024 - 11:30 PM")) != 0 {
		t.Fatalf("start-day evening should be contained")
	}
	if FindApplicable(windows, ts(t, "Tuesday - 02/01/2024 - 05:00 AM")) != 0 {
		t.Fatalf("end-day morning should be contained")
	}
	if FindApplicable(windows, ts(t, "Tuesday - 02/01/2024 - 07:00 AM")) != -1 {
		t.Fatalf("past the end should not be contained")
	}
}

func TestFindApplicableWrappingSpan(t *testing.T) {
	// Friday evening through Monday morning wraps the week boundary.
	w := window(t, "Friday", "10:00 PM", "Monday", "6:00 AM")
	windows := []domain.Window{w}

	if FindApplicable(windows, ts(t, "Saturday - 06/01/2024 - 02:00 PM")) != 0 {
		t.Fatalf("saturday inside the wrap should be contained")
	}
	if FindApplicable(windows, ts(t, "Wednesday - 03/01/2024 - 02:00 PM")) != -1 {
		t.Fatalf("wednesday outside the wrap should not be contained")
	}
}
