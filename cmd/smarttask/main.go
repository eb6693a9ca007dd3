package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"smarttask/internal/alarm"
	"smarttask/internal/config"
	"smarttask/internal/logger"
	"smarttask/internal/sound"
	"smarttask/internal/task"
	"smarttask/internal/ui"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(&cfg, runGUI).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, run func(config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smarttask",
		Short: "Smart Task Manager: a to-do list with alarms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Normalize()
			return run(*cfg)
		},
		SilenceUsage: true,
		Version:      version,
	}
	cfg.BindFlags(cmd.Flags())
	return cmd
}

func runGUI(cfg config.Config) error {
	closeLog, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	a := app.NewWithID(cfg.AppID)
	list := task.NewList(task.NewPrefsStore(a.Preferences()))
	if err := list.Load(); err != nil {
		logger.Error("Saved tasks could not be read; starting with an empty list", "error", err)
	}
	total, done := list.Stats()
	logger.Info("Starting", "version", version, "tasks", total, "done", done, "poll_interval", cfg.PollInterval)

	ui.Run(a, list, sound.NewPlayer(cfg.SoundFile), alarm.WithInterval(cfg.PollInterval))
	return nil
}

func initLogger(cfg config.Config) (func(), error) {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		logger.Init(level, nil)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.Init(level, f)
	return func() { _ = f.Close() }, nil
}
