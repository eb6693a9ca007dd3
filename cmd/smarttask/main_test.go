package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttask/internal/config"
	"smarttask/internal/logger"
)

func TestRootCommandAppliesFlagsAndClamps(t *testing.T) {
	cfg := config.Default()
	var got config.Config
	cmd := newRootCmd(&cfg, func(c config.Config) error {
		got = c
		return nil
	})
	cmd.SetArgs([]string{"--poll-interval=1ms", "--sound=/tmp/ring.wav", "--log-level=debug"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, config.MinPollInterval, got.PollInterval)
	assert.Equal(t, "/tmp/ring.wav", got.SoundFile)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cfg := config.Default()
	cmd := newRootCmd(&cfg, func(config.Config) error {
		t.Fatal("run must not be called")
		return nil
	})
	cmd.SetArgs([]string{"extra"})
	cmd.SetErr(&nopWriter{})
	assert.Error(t, cmd.Execute())
}

func TestRootCommandKeepsDefaults(t *testing.T) {
	cfg := config.Default()
	var got config.Config
	cmd := newRootCmd(&cfg, func(c config.Config) error {
		got = c
		return nil
	})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 10*time.Second, got.PollInterval)
	assert.Equal(t, config.DefaultAppID, got.AppID)
}

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smarttask.jsonl")
	closeLog, err := initLogger(config.Config{LogLevel: "info", LogFile: path})
	require.NoError(t, err)
	t.Cleanup(func() { logger.Init(logger.LevelInfo, nil) })

	logger.Info("hello", "count", 1)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
