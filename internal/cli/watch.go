package cli

import (
	"fmt"

	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"punchcard/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the auto-process scheduler",
	Long: `Watch starts the cron-based scheduler and blocks. On each tick
the input directory is swept and, when a Slack bot token and report
channel are configured, a run summary is posted to that channel.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if cfg.AutoProcessSchedule == "" {
		return fmt.Errorf("auto_process_schedule is not set")
	}

	var api *slack.Client
	if cfg.SlackBotToken != "" {
		api = slack.New(cfg.SlackBotToken)
	}

	watch.Start(cfg, api)
	select {}
}
