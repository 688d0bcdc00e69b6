package review

import (
	"encoding/json"
	"os"

	"punchcard/internal/domain"
	"punchcard/internal/timeparse"
)

// Envelope is the bare persisted shape the engine reads and writes:
// just the cleaned record strings, labels stripped.
type Envelope struct {
	RecordedTimes []string `json:"recordedTimes"`
}

// CleanRecords strips any trailing parenthesized label from each
// record, producing the exportable record strings.
func CleanRecords(records []domain.LabeledRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = timeparse.StripLabel(rec.Record)
	}
	return out
}

// SaveRecordedTimes writes the cleaned record list to path as
// {"recordedTimes": [...]} JSON.
func SaveRecordedTimes(path string, records []domain.LabeledRecord) error {
	data, err := json.MarshalIndent(Envelope{RecordedTimes: CleanRecords(records)}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
