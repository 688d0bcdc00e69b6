// Package app orchestrates processing runs: loading upload files,
// dispatching to the selected labeling engine, and writing results.
package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"punchcard/internal/batch"
	"punchcard/internal/config"
	"punchcard/internal/domain"
	"punchcard/internal/label"
	"punchcard/internal/report"
	"punchcard/internal/review"
)

// RunResult describes one processed upload file.
type RunResult struct {
	RunID       string
	File        string
	Engine      string
	Records     int
	NeedsReview bool
	Issues      int
	OutputPath  string
}

// DirResult tracks separate counters for a directory sweep.
type DirResult struct {
	Processed int
	Flagged   int
	Runs      []RunResult
	Errors    []string
}

// ProcessFile runs one upload file through the configured engine and
// writes its output under cfg.OutputDir.
func ProcessFile(cfg config.Config, path string) (RunResult, error) {
	runID := uuid.NewString()
	res := RunResult{RunID: runID, File: path, Engine: cfg.Engine}

	env, err := batch.Load(path)
	if err != nil {
		return res, err
	}
	res.Records = len(env.RecordedTimes)

	schedules := env.Schedules
	if len(schedules) == 0 {
		schedules, err = cfg.ResolveSchedules()
		if err != nil {
			return res, err
		}
	}

	now := time.Now()
	switch cfg.Engine {
	case "basic", "overtime":
		var rows []domain.SimpleLabeled
		if cfg.Engine == "basic" {
			rows, err = label.BasicMulti(env.Records(), schedules)
		} else {
			rows, err = label.OvertimeMulti(env.Records(), schedules)
		}
		if err != nil {
			return res, fmt.Errorf("%s engine: %w", cfg.Engine, err)
		}
		res.OutputPath, err = report.WriteLabeledJSON(rows, cfg.OutputDir, cfg.TeamName, runID, now)
		if err != nil {
			return res, err
		}
	case "review":
		out := review.Process(env.Inputs(), schedules)
		if out.Status == "error" {
			return res, fmt.Errorf("review engine: %s", out.Message)
		}
		res.NeedsReview = out.NeedsReview
		res.Issues = len(out.Issues)
		res.OutputPath, err = report.WriteReviewReport(out, cfg.OutputDir, cfg.TeamName, runID, now)
		if err != nil {
			return res, err
		}
	default:
		return res, fmt.Errorf("unknown engine '%s'", cfg.Engine)
	}

	log.Printf("processed %s engine=%s records=%d issues=%d -> %s",
		filepath.Base(path), cfg.Engine, res.Records, res.Issues, res.OutputPath)
	return res, nil
}

// ProcessDir processes every .json upload in cfg.InputDir and moves
// finished files into a processed/ subdirectory so a rerun does not
// pick them up again.
func ProcessDir(cfg config.Config) (DirResult, error) {
	var result DirResult

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return result, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(cfg.InputDir, entry.Name()))
	}
	sort.Strings(files)

	processedDir := filepath.Join(cfg.InputDir, "processed")
	for _, file := range files {
		run, err := ProcessFile(cfg, file)
		if err != nil {
			log.Printf("process error file=%s: %v", filepath.Base(file), err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filepath.Base(file), err))
			continue
		}
		result.Processed++
		if run.NeedsReview {
			result.Flagged++
		}
		result.Runs = append(result.Runs, run)

		if err := os.MkdirAll(processedDir, 0755); err != nil {
			log.Printf("create processed dir: %v", err)
			continue
		}
		dest := filepath.Join(processedDir, filepath.Base(file))
		if err := os.Rename(file, dest); err != nil {
			log.Printf("move processed file %s: %v", filepath.Base(file), err)
		}
	}

	return result, nil
}

// FormatRunSummary returns a human-readable summary of a directory sweep.
func FormatRunSummary(result DirResult) string {
	if result.Processed == 0 && len(result.Errors) == 0 {
		return "No upload files found, nothing to process."
	}
	if result.Processed == 0 {
		return fmt.Sprintf("All uploads failed:\n%s", strings.Join(result.Errors, "\n"))
	}

	msg := fmt.Sprintf("Processed %d upload(s)", result.Processed)
	if result.Flagged > 0 {
		msg += fmt.Sprintf(", %d flagged for review", result.Flagged)
	}
	msg += "."
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(result.Errors, "\n"))
	}
	return msg
}
