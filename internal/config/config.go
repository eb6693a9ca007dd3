// Package config resolves process-level settings: defaults, then an optional
// .env file, then SMARTTASK_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"smarttask/internal/logger"
)

const (
	DefaultAppID        = "io.github.smarttask"
	DefaultPollInterval = 10 * time.Second

	MinPollInterval = time.Second
	MaxPollInterval = 5 * time.Minute

	envPrefix = "SMARTTASK_"
)

type Config struct {
	AppID        string
	LogLevel     string
	LogFile      string
	PollInterval time.Duration
	SoundFile    string
}

func Default() Config {
	return Config{
		AppID:        DefaultAppID,
		LogLevel:     "info",
		PollInterval: DefaultPollInterval,
	}
}

// Load reads envFile (missing is fine) into the process environment and
// applies SMARTTASK_* variables on top of the defaults.
func Load(envFile string) (Config, error) {
	cfg := Default()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("APP_ID", &c.AppID)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	str("SOUND_FILE", &c.SoundFile)

	if v, ok := lookup(envPrefix + "POLL_INTERVAL"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sPOLL_INTERVAL: %w", envPrefix, err)
		}
		c.PollInterval = d
	}
	return nil
}

// BindFlags registers flags whose defaults are the current values.
func (c *Config) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.AppID, "app-id", c.AppID, "Application ID; selects the client storage namespace")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "Also write JSONL logs to this file")
	flags.DurationVar(&c.PollInterval, "poll-interval", c.PollInterval, "How often alarms are checked")
	flags.StringVar(&c.SoundFile, "sound", c.SoundFile, "Audio file played when an alarm fires; empty plays the built-in clip")
}

// Normalize clamps out-of-range values, logging each adjustment.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.AppID) == "" {
		c.AppID = DefaultAppID
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		logger.Warn("Unknown log level, using info", "requested", c.LogLevel)
		c.LogLevel = "info"
	}
	switch {
	case c.PollInterval < MinPollInterval:
		logger.Warn("Poll interval clamped", "requested", c.PollInterval, "effective", MinPollInterval)
		c.PollInterval = MinPollInterval
	case c.PollInterval > MaxPollInterval:
		logger.Warn("Poll interval clamped", "requested", c.PollInterval, "effective", MaxPollInterval)
		c.PollInterval = MaxPollInterval
	}
}
