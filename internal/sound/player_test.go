package sound

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	available map[string]bool
	started   [][]string
	startErr  error
}

func (h *fakeHost) lookPath(name string) (string, error) {
	if h.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (h *fakeHost) start(name string, args ...string) error {
	h.started = append(h.started, append([]string{name}, args...))
	return h.startErr
}

func newTestPlayer(t *testing.T, goos string, host *fakeHost) (*Player, *bytes.Buffer) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "alarm.ogg")
	require.NoError(t, os.WriteFile(file, []byte("OggS"), 0o600))

	var bell bytes.Buffer
	p := NewPlayer(file)
	p.goos = goos
	p.lookPath = host.lookPath
	p.start = host.start
	p.bell = &bell
	cache := t.TempDir()
	p.cacheDir = func() (string, error) { return cache, nil }
	return p, &bell
}

func TestPlayPicksFirstAvailablePlayer(t *testing.T) {
	host := &fakeHost{available: map[string]bool{"ffplay": true, "aplay": true}}
	p, bell := newTestPlayer(t, "linux", host)

	p.Play()

	require.Len(t, host.started, 1)
	assert.Equal(t, "ffplay", host.started[0][0])
	assert.Equal(t, p.file, host.started[0][len(host.started[0])-1])
	assert.Empty(t, bell.String())
}

func TestPlayUsesAfplayOnDarwin(t *testing.T) {
	host := &fakeHost{available: map[string]bool{"afplay": true, "paplay": true}}
	p, _ := newTestPlayer(t, "darwin", host)

	p.Play()
	require.Len(t, host.started, 1)
	assert.Equal(t, []string{"afplay", p.file}, host.started[0])
}

func TestPlayFallsBackToBell(t *testing.T) {
	t.Run("no player", func(t *testing.T) {
		host := &fakeHost{}
		p, bell := newTestPlayer(t, "linux", host)
		p.Play()
		assert.Empty(t, host.started)
		assert.Equal(t, "\a", bell.String())
	})

	t.Run("player fails", func(t *testing.T) {
		host := &fakeHost{available: map[string]bool{"paplay": true}, startErr: errors.New("no sink")}
		p, bell := newTestPlayer(t, "linux", host)
		p.Play()
		assert.Len(t, host.started, 1)
		assert.Equal(t, "\a", bell.String())
	})

	t.Run("cache dir unavailable", func(t *testing.T) {
		host := &fakeHost{available: map[string]bool{"paplay": true}}
		p, bell := newTestPlayer(t, "linux", host)
		p.file = ""
		p.cacheDir = func() (string, error) { return "", errors.New("no home") }
		p.Play()
		assert.Empty(t, host.started)
		assert.Equal(t, "\a", bell.String())
	})
}

func TestPlayUsesBuiltinClip(t *testing.T) {
	tests := []struct {
		name string
		file func(t *testing.T) string
	}{
		{"no file configured", func(*testing.T) string { return "" }},
		{"configured file missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.ogg") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{available: map[string]bool{"paplay": true}}
			p, bell := newTestPlayer(t, "linux", host)
			p.file = tt.file(t)

			p.Play()

			require.Len(t, host.started, 1)
			assert.Equal(t, "paplay", host.started[0][0])
			clip := host.started[0][1]
			assert.Equal(t, clipName, filepath.Base(clip))
			data, err := os.ReadFile(clip)
			require.NoError(t, err)
			assert.Equal(t, defaultClip, data)
			assert.Empty(t, bell.String())
		})
	}
}

func TestBuiltinClipWrittenOnce(t *testing.T) {
	host := &fakeHost{available: map[string]bool{"paplay": true}}
	p, _ := newTestPlayer(t, "linux", host)
	p.file = ""

	p.Play()
	require.Len(t, host.started, 1)
	clip := host.started[0][1]
	before, err := os.Stat(clip)
	require.NoError(t, err)

	p.Play()
	require.Len(t, host.started, 2)
	assert.Equal(t, clip, host.started[1][1])
	after, err := os.Stat(clip)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestDefaultClipIsWave(t *testing.T) {
	require.Greater(t, len(defaultClip), 44)
	assert.Equal(t, "RIFF", string(defaultClip[:4]))
	assert.Equal(t, "WAVE", string(defaultClip[8:12]))
}

func TestPowerShellCommandEscapesQuotes(t *testing.T) {
	host := &fakeHost{available: map[string]bool{"powershell": true}}
	p, _ := newTestPlayer(t, "windows", host)
	p.file = filepath.Join(t.TempDir(), "o'clock.wav")
	require.NoError(t, os.WriteFile(p.file, []byte("RIFF"), 0o600))

	p.Play()

	require.Len(t, host.started, 1)
	script := host.started[0][len(host.started[0])-1]
	assert.Contains(t, script, "o''clock.wav'")
	assert.NotContains(t, script, "o'clock")
}
