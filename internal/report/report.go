// Package report renders processing results to disk: Markdown review
// reports and labeled-record JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"punchcard/internal/review"
)

// WriteReviewReport renders a review result as Markdown and writes it
// under outputDir. Returns the written path.
func WriteReviewReport(res review.Result, outputDir, teamName, runID string, when time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	filename := fmt.Sprintf("%s_%s_%s.md", sanitizeFilename(teamName), when.Format("20060102"), shortID(runID))
	path := filepath.Join(outputDir, filename)
	content := RenderReviewMarkdown(res, teamName, when)
	return path, os.WriteFile(path, []byte(content), 0644)
}

// RenderReviewMarkdown builds the Markdown body for a review result.
func RenderReviewMarkdown(res review.Result, teamName string, when time.Time) string {
	var out strings.Builder

	fmt.Fprintf(&out, "# Attendance Review: %s\n\n", teamName)
	fmt.Fprintf(&out, "Generated %s\n\n", when.Format("Mon, 02 Jan 2006 3:04 PM"))

	if res.Status == "error" {
		fmt.Fprintf(&out, "**Processing failed:** %s\n", res.Message)
		return out.String()
	}

	fmt.Fprintf(&out, "Records processed: %d\n\n", len(res.OriginalRecords))
	if res.NeedsReview {
		out.WriteString("**Needs review**, see issues below.\n\n")
	} else {
		out.WriteString("No issues found.\n\n")
	}

	if len(res.MergedRecords) > 0 {
		out.WriteString("## Records\n\n")
		out.WriteString("| Date | Day | Times |\n")
		out.WriteString("|------|-----|-------|\n")
		for _, row := range res.MergedRecords {
			fmt.Fprintf(&out, "| %s | %s | %s |\n", row.Date, row.Day, row.Times)
		}
		out.WriteString("\n")
	}

	if len(res.Issues) > 0 {
		out.WriteString("## Issues\n\n")
		for _, issue := range res.Issues {
			fmt.Fprintf(&out, "- %s\n", issue)
		}
		out.WriteString("\n")
	}

	return out.String()
}

// WriteLabeledJSON writes labeled rows (basic or overtime engine
// output) as an indented JSON file under outputDir.
func WriteLabeledJSON(rows any, outputDir, teamName, runID string, when time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal labeled records: %w", err)
	}
	filename := fmt.Sprintf("%s_%s_%s.json", sanitizeFilename(teamName), when.Format("20060102"), shortID(runID))
	path := filepath.Join(outputDir, filename)
	return path, os.WriteFile(path, data, 0644)
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(s)
}

// shortID trims a run ID to its first UUID group for filenames.
func shortID(runID string) string {
	if i := strings.IndexByte(runID, '-'); i > 0 {
		return runID[:i]
	}
	return runID
}
