package review

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

// Validator tolerances, in hours. Only significant deviations become
// issues; the 15-minute anchor tagging happens independently in
// labeling.
const (
	ArrivalToleranceHours   = 1.0
	DepartureToleranceHours = 1.0
	OvertimeToleranceHours  = 0.5
)

// Validate cross-checks a shift's labeled records against its
// schedule and returns the issues found. A record whose claimed
// weekday disagrees with its date is reported once and excluded from
// the arrival/departure checks; records confirmed as validated
// overtime are exempt from overtime and late-departure flags. An
// internal failure degrades the whole check to no issues rather than
// aborting the batch.
func Validate(records []domain.LabeledRecord, w domain.Window) []string {
	startHour, err := timeparse.ParseClockHour(w.StartTime)
	if err != nil {
		log.Printf("schedule validation skipped: %v", err)
		return nil
	}
	endHour, err := timeparse.ParseClockHour(w.EndTime)
	if err != nil {
		log.Printf("schedule validation skipped: %v", err)
		return nil
	}

	overnight := w.StartDay != w.EndDay || endHour <= startHour
	if overnight {
		endHour += 24.0
	}

	var issues []string
	mismatched := make(map[string]bool)

	// Group by calendar date, flagging day/date mismatches as we go.
	groups := make(map[string][]domain.LabeledRecord)
	var groupOrder []string
	for _, rec := range records {
		if parts := strings.Split(rec.Record, " - "); len(parts) == 3 {
			claimedDay := strings.TrimSpace(parts[0])
			if actual, err := timeparse.ParseDate(strings.TrimSpace(parts[1])); err == nil {
				actualDay := actual.Weekday().String()
				if claimedDay != actualDay {
					issues = append(issues, fmt.Sprintf("%s in record: %s (date is actually a %s)",
						domain.IssueDayDateMismatch, rec.Record, actualDay))
					mismatched[rec.Record] = true
					continue
				}
			}
		}
		key := rec.Time.Format("2006-01-02")
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], rec)
	}

	for _, key := range groupOrder {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Time.Before(group[j].Time) })

		for _, rec := range group {
			if mismatched[rec.Record] {
				continue
			}
			day := rec.Time.Weekday().String()
			if day != w.StartDay && day != w.EndDay {
				continue
			}

			label := rec.Label
			if label == domain.LabelTimeInLate {
				continue
			}
			if rec.ValidatedOvertime &&
				(strings.HasPrefix(label, domain.LabelTimeOut) || strings.HasSuffix(label, "(Overtime)")) {
				continue
			}

			hour := timeparse.ClockHour(rec.Time)
			if overnight && day == w.EndDay {
				hour += 24.0
			}

			switch {
			case strings.HasPrefix(label, domain.LabelTimeIn) && label != domain.LabelTimeInLate:
				if hour < startHour-ArrivalToleranceHours && day == w.StartDay {
					issues = append(issues, fmt.Sprintf("%s: %s", domain.IssueEarlyArrival, rec.Record))
				} else if hour > startHour+ArrivalToleranceHours && day == w.StartDay {
					issues = append(issues, fmt.Sprintf("%s: %s", domain.IssueLateArrival, rec.Record))
				}
			case strings.HasPrefix(label, domain.LabelTimeOut):
				if hour < endHour-DepartureToleranceHours && day == w.EndDay {
					issues = append(issues, fmt.Sprintf("%s: %s", domain.IssueEarlyDeparture, rec.Record))
				} else if hour > endHour+OvertimeToleranceHours && day == w.EndDay {
					if !rec.ValidatedOvertime {
						issues = append(issues, fmt.Sprintf("%s: %s", domain.IssueOvertime, rec.Record))
					}
				}
			}
		}
	}

	return issues
}
