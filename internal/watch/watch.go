// Package watch runs the cron-based auto-process scheduler: it sweeps
// the input directory on a schedule and optionally posts a summary of
// each sweep to Slack.
package watch

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"punchcard/internal/app"
	"punchcard/internal/config"
)

// Start launches the auto-process scheduler if one is configured.
// The schedule is a standard 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 9 * * *" (daily 9am), "*/30 * * * 1-5" (every 30min on weekdays).
func Start(cfg config.Config, api *slack.Client) {
	schedule := strings.TrimSpace(cfg.AutoProcessSchedule)
	if schedule == "" {
		log.Println("Auto-process disabled (auto_process_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid auto_process_schedule '%s': %v, auto-process disabled", schedule, err)
		return
	}

	log.Printf("Auto-process scheduled (cron: %s) watching %s", schedule, cfg.InputDir)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next auto-process at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			result, runErr := app.ProcessDir(cfg)
			summary := app.FormatRunSummary(result)
			if runErr != nil {
				log.Printf("Auto-process error: %v", runErr)
				summary = fmt.Sprintf("Auto-process error: %v", runErr)
			}
			log.Printf("Auto-process complete: %s", summary)

			if api != nil && cfg.ReportChannelID != "" {
				_, _, postErr := api.PostMessage(cfg.ReportChannelID, slack.MsgOptionText(
					fmt.Sprintf("Auto-process complete: %s", summary), false))
				if postErr != nil {
					log.Printf("Auto-process post error: %v", postErr)
				}
			}
		}
	}()
}
