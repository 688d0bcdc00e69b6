package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"punchcard/internal/batch"
	"punchcard/internal/domain"
	"punchcard/internal/review"
)

var exportCmd = &cobra.Command{
	Use:   "export <input.json> <output.json>",
	Short: "Strip labels from an upload and save clean record strings",
	Long: `Export reads a processed upload file, strips any embedded or
attached labels from its records, and writes a clean recordedTimes
file suitable for re-uploading.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	records := make([]domain.LabeledRecord, len(env.RecordedTimes))
	for i, entry := range env.RecordedTimes {
		records[i] = domain.LabeledRecord{Record: entry.Record, Label: entry.Label}
	}
	if err := review.SaveRecordedTimes(args[1], records); err != nil {
		return err
	}
	fmt.Printf("Exported %d record(s) to %s\n", len(records), args[1])
	return nil
}
