// Package config loads punchcard settings from config.yaml with
// environment-variable overrides, plus the weekly schedules file.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"punchcard/internal/domain"
)

type Config struct {
	// Where the weekly schedules live. Ignored when schedules are
	// inlined below.
	SchedulesPath string `yaml:"schedules_path"`

	// Inline schedules take precedence over schedules_path.
	Schedules []domain.Schedule `yaml:"schedules"`

	// Engine is "basic", "overtime" or "review".
	Engine string `yaml:"engine"`

	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	// 5-field cron expression; empty disables the auto-process scheduler.
	AutoProcessSchedule string `yaml:"auto_process_schedule"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`

	TeamName string `yaml:"team_name"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.SchedulesPath, "SCHEDULES_PATH")
	envOverride(&cfg.Engine, "ENGINE")
	envOverride(&cfg.InputDir, "INPUT_DIR")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverride(&cfg.AutoProcessSchedule, "AUTO_PROCESS_SCHEDULE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverride(&cfg.TeamName, "TEAM_NAME")

	if cfg.Engine == "" {
		cfg.Engine = "review"
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "./incoming"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./reports"
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "My Team"
	}

	if !ValidEngine(cfg.Engine) {
		log.Fatalf("Unknown engine '%s' (want basic, overtime or review)", cfg.Engine)
	}

	return cfg
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// ValidEngine reports whether name is a known engine selection.
func ValidEngine(name string) bool {
	switch name {
	case "basic", "overtime", "review":
		return true
	}
	return false
}

// ScheduleFile is the schedules.yaml shape: a list of weekly windows.
type ScheduleFile struct {
	Schedules []domain.Schedule `yaml:"schedules"`
}

// LoadSchedules reads a schedules YAML file. Blank fields inside each
// schedule keep their documented defaults; an empty list is allowed
// here and handled by the engines.
func LoadSchedules(path string) ([]domain.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedules: %w", err)
	}
	var f ScheduleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedules yaml: %w", err)
	}
	return f.Schedules, nil
}

// SaveSchedules writes a schedule list back out as schedules YAML.
func SaveSchedules(path string, schedules []domain.Schedule) error {
	data, err := yaml.Marshal(ScheduleFile{Schedules: schedules})
	if err != nil {
		return fmt.Errorf("marshal schedules: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveSchedules returns the schedules to process with: inline
// config schedules first, then the schedules file, then none (the
// engines fall back to their defaults or report the absence).
func (c Config) ResolveSchedules() ([]domain.Schedule, error) {
	if len(c.Schedules) > 0 {
		return c.Schedules, nil
	}
	if strings.TrimSpace(c.SchedulesPath) != "" {
		return LoadSchedules(c.SchedulesPath)
	}
	return nil, nil
}
