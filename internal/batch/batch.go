// Package batch parses punch-record upload files: a JSON envelope with
// a recordedTimes list and an optional schedules list.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"punchcard/internal/domain"
	"punchcard/internal/review"
)

var (
	ErrMissingRecordedTimes = errors.New("recordedTimes must be a list")
	ErrBadEntry             = errors.New("recordedTimes entries must be strings or record objects")
)

// Entry is one recordedTimes element. Uploads may send plain record
// strings or objects carrying a prior label and overtime validation.
type Entry struct {
	Record            string
	Label             string
	ValidatedOvertime bool
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Entry{Record: s}
		return nil
	}
	var obj struct {
		Record            string `json:"record"`
		Label             string `json:"label"`
		ValidatedOvertime bool   `json:"validated_overtime"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return ErrBadEntry
	}
	if strings.TrimSpace(obj.Record) == "" {
		return fmt.Errorf("%w: object missing record field", ErrBadEntry)
	}
	*e = Entry{
		Record:            obj.Record,
		Label:             obj.Label,
		ValidatedOvertime: obj.ValidatedOvertime,
	}
	return nil
}

// Envelope is a parsed upload file.
type Envelope struct {
	RecordedTimes []Entry
	Schedules     []domain.Schedule
}

// scheduleJSON distinguishes missing fields from blank ones so
// malformed schedule objects are rejected instead of silently
// defaulted.
type scheduleJSON struct {
	StartDay  *string `json:"start_day"`
	StartTime *string `json:"start_time"`
	EndDay    *string `json:"end_day"`
	EndTime   *string `json:"end_time"`
}

// Parse decodes and validates an upload envelope.
func Parse(data []byte) (Envelope, error) {
	var raw struct {
		RecordedTimes []Entry        `json:"recordedTimes"`
		Schedules     []scheduleJSON `json:"schedules"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope{}, fmt.Errorf("parse upload json: %w", err)
	}
	if raw.RecordedTimes == nil {
		return Envelope{}, ErrMissingRecordedTimes
	}

	env := Envelope{RecordedTimes: raw.RecordedTimes}
	for i, s := range raw.Schedules {
		if s.StartDay == nil || s.StartTime == nil || s.EndDay == nil || s.EndTime == nil {
			return Envelope{}, fmt.Errorf("schedule %d missing one of start_day, start_time, end_day, end_time", i)
		}
		env.Schedules = append(env.Schedules, domain.Schedule{
			StartDay:  *s.StartDay,
			StartTime: *s.StartTime,
			EndDay:    *s.EndDay,
			EndTime:   *s.EndTime,
		})
	}
	return env, nil
}

// Load reads and parses an upload file from disk.
func Load(path string) (Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, fmt.Errorf("read upload: %w", err)
	}
	return Parse(data)
}

// Records returns the bare record strings of the envelope.
func (e Envelope) Records() []string {
	out := make([]string, len(e.RecordedTimes))
	for i, entry := range e.RecordedTimes {
		out[i] = entry.Record
	}
	return out
}

// Inputs converts envelope entries into review inputs, keeping any
// labels and overtime validations the upload carried.
func (e Envelope) Inputs() []review.Input {
	out := make([]review.Input, len(e.RecordedTimes))
	for i, entry := range e.RecordedTimes {
		out[i] = review.Input{
			Record:            entry.Record,
			Label:             entry.Label,
			ValidatedOvertime: entry.ValidatedOvertime,
		}
	}
	return out
}
