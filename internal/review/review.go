// Package review implements the schedule-validating engine: records
// are matched to their best-fit schedule, grouped into shifts with the
// schedule-anchored segmenter, anchor-labeled, cross-checked against
// the schedule tolerances, and merged into per-date display rows. This
// is the engine payroll reviewers work from.
package review

import (
	"sort"

	"punchcard/internal/domain"
	"punchcard/internal/match"
	"punchcard/internal/segment"
	"punchcard/internal/timeparse"
)

// Anchor tolerance: a first punch more than 15 minutes off the
// schedule start is tagged Early or Late; a last punch more than 15
// minutes past the end is tagged Overtime.
const AnchorToleranceHours = 0.25

// Input is one record as the reviewer accepts it: either a bare
// record string, or a previously labeled record round-tripping
// through review with its confirmation state.
type Input struct {
	Record            string `json:"record"`
	Label             string `json:"label,omitempty"`
	ValidatedOvertime bool   `json:"validated_overtime,omitempty"`
}

// Strings wraps bare record strings as reviewer inputs.
func Strings(recordedTimes []string) []Input {
	inputs := make([]Input, len(recordedTimes))
	for i, r := range recordedTimes {
		inputs[i] = Input{Record: r}
	}
	return inputs
}

// Result is the reviewing engine's outcome. Status is "success" or
// "error"; on error only Message is set. NeedsReview mirrors whether
// any issues were found.
type Result struct {
	Status          string                 `json:"status"`
	Message         string                 `json:"message,omitempty"`
	MergedRecords   []domain.MergedRow     `json:"merged_records,omitempty"`
	NeedsReview     bool                   `json:"needs_review"`
	Issues          []string               `json:"issues"`
	OriginalRecords []domain.LabeledRecord `json:"original_records,omitempty"`
}

// Process runs the full reviewing pipeline. All failures — malformed
// records, missing schedules, bad schedule times — surface as an
// error-status result with the cause preserved in Message; a batch is
// labeled all-or-nothing.
func Process(inputs []Input, schedules []domain.Schedule) Result {
	records, issues, err := run(inputs, schedules)
	if err != nil {
		return Result{Status: "error", Message: err.Error(), Issues: []string{}}
	}
	merged, err := Merge(records)
	if err != nil {
		return Result{Status: "error", Message: err.Error(), Issues: []string{}}
	}
	if issues == nil {
		issues = []string{}
	}
	return Result{
		Status:          "success",
		MergedRecords:   merged,
		NeedsReview:     len(issues) > 0,
		Issues:          issues,
		OriginalRecords: records,
	}
}

func run(inputs []Input, schedules []domain.Schedule) ([]domain.LabeledRecord, []string, error) {
	if len(inputs) == 0 {
		return nil, nil, domain.ErrEmptyInput
	}
	if len(schedules) == 0 {
		return nil, nil, domain.ErrMissingSchedule
	}

	windows, err := domain.ResolveAll(schedules)
	if err != nil {
		return nil, nil, err
	}

	validated := make(map[string]bool)
	records := make([]domain.Record, 0, len(inputs))
	for _, in := range inputs {
		t, err := timeparse.ParseRecord(in.Record)
		if err != nil {
			return nil, nil, err
		}
		if in.ValidatedOvertime {
			validated[in.Record] = true
		}
		records = append(records, domain.Record{
			Record:            in.Record,
			Time:              t,
			Matched:           -1,
			ValidatedOvertime: in.ValidatedOvertime,
			OriginalLabel:     in.Label,
		})
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Time.Before(records[j].Time) })

	// Attach the best-fit schedule and boundary flags per record.
	for i := range records {
		best, score, flags := match.Best(windows, records[i].Time)
		records[i].Matched = best
		records[i].MatchScore = score
		records[i].ExactTimeIn = flags.ExactTimeIn
		records[i].ExactTimeOut = flags.ExactTimeOut
		records[i].OvertimeCandidate = flags.OvertimeCandidate
	}

	shifts := segment.SplitAnchored(records, windows)

	var all []domain.LabeledRecord
	var issues []string
	for _, shift := range shifts {
		wi := shiftWindow(records, shift, windows)
		if wi >= 0 {
			flagAnchors(records, shift, windows[wi])
		}

		labeled := labelShift(records, shift)
		for i := range labeled {
			if validated[labeled[i].Record] {
				labeled[i].ValidatedOvertime = true
			}
		}

		if wi >= 0 {
			issues = append(issues, Validate(labeled, windows[wi])...)
		}
		all = append(all, labeled...)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Time.Before(all[j].Time) })
	return all, issues, nil
}

// shiftWindow picks the schedule a shift is judged against: the first
// record's matched window, else the first schedule starting on the
// shift's first weekday.
func shiftWindow(records []domain.Record, shift []int, windows []domain.Window) int {
	first := records[shift[0]]
	if first.Matched >= 0 {
		return first.Matched
	}
	day := timeparse.DayName(first.Time)
	for i, w := range windows {
		if w.StartDay == day {
			return i
		}
	}
	return -1
}

// flagAnchors sets the early/late flag on the shift's first record and
// the overtime flag on its last, relative to the shift's schedule.
func flagAnchors(records []domain.Record, shift []int, w domain.Window) {
	first := &records[shift[0]]
	firstHour := first.ClockHour()
	if firstHour < w.StartHour-AnchorToleranceHours {
		first.Early = true
	} else if firstHour > w.StartHour+AnchorToleranceHours {
		first.Late = true
	}

	if len(shift) < 2 {
		return
	}
	last := &records[shift[len(shift)-1]]
	if timeparse.DayName(last.Time) != w.EndDay {
		return
	}
	endHour := w.EndHour
	if endHour < w.StartHour && w.StartDay == w.EndDay {
		endHour += 24.0
	}
	if last.ClockHour() > endHour+AnchorToleranceHours || last.OvertimeCandidate {
		last.Overtime = true
	}
}

// labelShift assigns the anchor labels: first record Time In (with an
// Early/Late suffix from the anchor flags), last record Time Out (with
// an Overtime suffix), everything between alternating Break Out and
// Break In.
func labelShift(records []domain.Record, shift []int) []domain.LabeledRecord {
	n := len(shift)
	if n == 0 {
		return nil
	}
	out := make([]domain.LabeledRecord, 0, n)

	first := records[shift[0]]
	label := domain.LabelTimeIn
	if first.Early {
		label = domain.LabelTimeInEarly
	} else if first.Late {
		label = domain.LabelTimeInLate
	}
	out = append(out, domain.LabeledRecord{
		Record:            first.Record,
		Time:              first.Time,
		Label:             label,
		ValidatedOvertime: first.ValidatedOvertime,
	})

	if n > 2 {
		state := domain.LabelBreakOut
		for _, i := range shift[1 : n-1] {
			out = append(out, domain.LabeledRecord{
				Record:            records[i].Record,
				Time:              records[i].Time,
				Label:             state,
				ValidatedOvertime: records[i].ValidatedOvertime,
			})
			if state == domain.LabelBreakOut {
				state = domain.LabelBreakIn
			} else {
				state = domain.LabelBreakOut
			}
		}
	}

	if n >= 2 {
		last := records[shift[n-1]]
		label := domain.LabelTimeOut
		if last.Overtime {
			label = domain.LabelTimeOutOvertime
		}
		out = append(out, domain.LabeledRecord{
			Record:            last.Record,
			Time:              last.Time,
			Label:             label,
			ValidatedOvertime: last.ValidatedOvertime,
		})
	}
	return out
}
