// Package sound plays the alarm sound through whatever audio tool the host
// provides.
package sound

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"smarttask/internal/logger"
)

//go:embed alarm.wav
var defaultClip []byte

const clipName = "alarm.wav"

type Player struct {
	file     string
	goos     string
	cacheDir func() (string, error)
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
	bell     io.Writer
}

// NewPlayer returns a player for file. An empty or missing file plays the
// built-in clip; the terminal bell is the last resort.
func NewPlayer(file string) *Player {
	return &Player{
		file:     file,
		goos:     runtime.GOOS,
		cacheDir: os.UserCacheDir,
		lookPath: exec.LookPath,
		start:    startDetached,
		bell:     os.Stderr,
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Play starts playback and returns without waiting for it to finish.
func (p *Player) Play() {
	file, err := p.source()
	if err != nil {
		logger.Warn("Alarm sound unavailable", "error", err)
		fmt.Fprint(p.bell, "\a")
		return
	}
	cmd, ok := p.command(file)
	if !ok {
		fmt.Fprint(p.bell, "\a")
		return
	}
	if err := p.start(cmd[0], cmd[1:]...); err != nil {
		logger.Warn("Alarm sound failed", "player", cmd[0], "error", err)
		fmt.Fprint(p.bell, "\a")
	}
}

// source returns the configured file, or the built-in clip when none is
// configured or the configured one is gone.
func (p *Player) source() (string, error) {
	if p.file != "" {
		_, err := os.Stat(p.file)
		if err == nil {
			return p.file, nil
		}
		logger.Warn("Alarm sound file unavailable, using built-in clip", "file", p.file, "error", err)
	}
	return p.builtinClip()
}

// builtinClip writes the embedded clip under the user cache dir once and
// returns its path.
func (p *Player) builtinClip() (string, error) {
	dir, err := p.cacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	path := filepath.Join(dir, "smarttask", clipName)
	if data, err := os.ReadFile(path); err == nil && bytes.Equal(data, defaultClip) {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create sound dir: %w", err)
	}
	if err := os.WriteFile(path, defaultClip, 0o644); err != nil {
		return "", fmt.Errorf("write built-in clip: %w", err)
	}
	return path, nil
}

func (p *Player) command(file string) ([]string, bool) {
	for _, c := range p.candidates(file) {
		if _, err := p.lookPath(c[0]); err == nil {
			return c, true
		}
	}
	return nil, false
}

func (p *Player) candidates(file string) [][]string {
	switch p.goos {
	case "darwin":
		return [][]string{{"afplay", file}}
	case "windows":
		quoted := strings.ReplaceAll(file, "'", "''")
		return [][]string{{"powershell", "-NoProfile", "-Command", fmt.Sprintf(`(New-Object Media.SoundPlayer '%s').PlaySync()`, quoted)}}
	default:
		return [][]string{
			{"paplay", file},
			{"pw-play", file},
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file},
			{"aplay", "-q", file},
		}
	}
}
