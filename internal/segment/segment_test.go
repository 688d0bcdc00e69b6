package segment

import (
	"testing"

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

func recs(t *testing.T, records ...string) []domain.Record {
	t.Helper()
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		ts, err := timeparse.ParseRecord(r)
		if err != nil {
			t.Fatalf("ParseRecord(%q): %v", r, err)
		}
		out = append(out, domain.Record{Record: r, Time: ts, Matched: -1})
	}
	return out
}

func assertShifts(t *testing.T, got [][]int, want [][]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d shifts %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("shift %d = %v, want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("shift %d = %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestSplitBasicSameDaySplitsOnDateChange(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	rs := recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 05:00 PM",
		"Monday - 08/01/2024 - 08:00 AM",
	)
	assertShifts(t, SplitBasic(rs, w), [][]int{{0, 1}, {2}})
}

func TestSplitBasicOvernightKeepsPairTogether(t *testing.T) {
	w := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")
	rs := recs(t,
		"Monday - 01/01/2024 - 10:00 PM",
		"Tuesday - 02/01/2024 - 06:00 AM",
	)
	assertShifts(t, SplitBasic(rs, w), [][]int{{0, 1}})
}

func TestSplitBasicOvernightSplitsNearStart(t *testing.T) {
	w := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")
	// The second punch lands the next day close to the start boundary,
	// so it opens a new shift rather than continuing the old one.
	rs := recs(t,
		"Monday - 01/01/2024 - 10:00 PM",
		"Tuesday - 02/01/2024 - 09:45 PM",
	)
	assertShifts(t, SplitBasic(rs, w), [][]int{{0}, {1}})
}

func TestSplitOvertimeNonOvernightSplitsOnDateChange(t *testing.T) {
	w := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	rs := recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 09:00 PM",
		"Tuesday - 02/01/2024 - 08:00 AM",
	)
	assertShifts(t, SplitOvertime(rs, w), [][]int{{0, 1}, {2}})
}

func TestSplitOvertimeOvernightLookahead(t *testing.T) {
	w := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")
	// Within duration plus slack (8h + 4h) across one date boundary.
	rs := recs(t,
		"Monday - 01/01/2024 - 10:00 PM",
		"Tuesday - 02/01/2024 - 06:00 AM",
	)
	assertShifts(t, SplitOvertime(rs, w), [][]int{{0, 1}})

	// Two dates ahead is a new shift.
	rs = recs(t,
		"Monday - 01/01/2024 - 10:00 PM",
		"Wednesday - 03/01/2024 - 06:00 AM",
	)
	assertShifts(t, SplitOvertime(rs, w), [][]int{{0}, {1}})
}

func TestSplitAnchoredGreedyPairing(t *testing.T) {
	day := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	night := window(t, "Monday", "10:00 PM", "Tuesday", "6:00 AM")
	windows := []domain.Window{day, night}

	rs := recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 05:00 PM",
		"Monday - 01/01/2024 - 10:05 PM",
		"Tuesday - 02/01/2024 - 05:55 AM",
	)
	rs[0].Matched = 0
	rs[1].Matched = 0
	rs[2].Matched = 1
	rs[3].Matched = 1

	shifts := SplitAnchored(rs, windows)
	assertShifts(t, shifts, [][]int{{0, 1}, {2, 3}})

	// The greedy pass pins the paired records to the overnight window.
	if rs[2].Matched != 1 || rs[3].Matched != 1 {
		t.Fatalf("paired records lost their window: %d %d", rs[2].Matched, rs[3].Matched)
	}
}

func TestSplitAnchoredSameDayNeverSplitsWithinDate(t *testing.T) {
	day := window(t, "Monday", "8:00 AM", "Monday", "5:00 PM")
	windows := []domain.Window{day}

	// A 9-hour gap would exceed the regular threshold, but same-day
	// schedules hold the date together.
	rs := recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 05:00 PM",
	)
	rs[0].Matched = 0
	rs[1].Matched = 0
	assertShifts(t, SplitAnchored(rs, windows), [][]int{{0, 1}})
}

func TestSplitAnchoredGapThreshold(t *testing.T) {
	// No window match: unmatched records split on the 4h gap rule.
	day := window(t, "Friday", "8:00 AM", "Friday", "5:00 PM")
	windows := []domain.Window{day}

	rs := recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 01:00 PM",
	)
	rs[0].Matched = -1
	rs[1].Matched = -1
	assertShifts(t, SplitAnchored(rs, windows), [][]int{{0}, {1}})

	rs = recs(t,
		"Monday - 01/01/2024 - 08:00 AM",
		"Monday - 01/01/2024 - 11:00 AM",
	)
	rs[0].Matched = -1
	rs[1].Matched = -1
	assertShifts(t, SplitAnchored(rs, windows), [][]int{{0, 1}})
}
