package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"punchcard/internal/app"
)

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Process upload files through the configured engine",
	Long: `Process one or more JSON upload files. With no arguments the
configured input directory is swept and finished files are moved into
its processed/ subdirectory.

Examples:
  punchcard process uploads/week34.json
  punchcard process --engine overtime uploads/week34.json
  punchcard process`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		result, err := app.ProcessDir(cfg)
		if err != nil {
			return err
		}
		fmt.Println(app.FormatRunSummary(result))
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d upload(s) failed", len(result.Errors))
		}
		return nil
	}

	var failed int
	for _, file := range args {
		run, err := app.ProcessFile(cfg, file)
		if err != nil {
			fmt.Printf("%s: error: %v\n", file, err)
			failed++
			continue
		}
		if run.NeedsReview {
			fmt.Printf("%s: %d record(s), %d issue(s), needs review -> %s\n", file, run.Records, run.Issues, run.OutputPath)
		} else {
			fmt.Printf("%s: %d record(s), clean -> %s\n", file, run.Records, run.OutputPath)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
