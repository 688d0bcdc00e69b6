// Package cli provides the command-line interface for punchcard.
package cli

import (
	"github.com/spf13/cobra"

	"punchcard/internal/config"
)

var (
	// Global flags, applied over config.yaml / env values.
	flagEngine    string
	flagSchedules string
	flagOutput    string
	flagTeam      string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "punchcard",
	Short: "Classify and review punch-clock attendance records",
	Long: `Punchcard labels raw punch-clock records against weekly work
schedules: time in, breaks, time out, overtime. The review engine also
flags anomalies (early arrivals, late arrivals, overtime, day/date
mismatches) and writes a Markdown report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		if flagEngine != "" {
			cfg.Engine = flagEngine
		}
		if flagSchedules != "" {
			cfg.SchedulesPath = flagSchedules
			cfg.Schedules = nil
		}
		if flagOutput != "" {
			cfg.OutputDir = flagOutput
		}
		if flagTeam != "" {
			cfg.TeamName = flagTeam
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEngine, "engine", "e", "", "labeling engine: basic, overtime or review")
	rootCmd.PersistentFlags().StringVarP(&flagSchedules, "schedules", "s", "", "path to a schedules YAML file")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output directory for reports")
	rootCmd.PersistentFlags().StringVarP(&flagTeam, "team", "t", "", "team name used in report filenames")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
}
