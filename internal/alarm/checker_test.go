package alarm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttask/internal/task"
)

type nopStore struct{}

func (nopStore) Load() ([]task.Task, error) { return nil, nil }
func (nopStore) Save([]task.Task) error     { return nil }

type recorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *recorder) Notify(t task.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, t.Text)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func mustAlarm(t *testing.T, s string) *time.Time {
	t.Helper()
	at, err := task.ParseAlarm(s)
	require.NoError(t, err)
	return &at
}

func TestCheckFiresOnceAndSkipsDone(t *testing.T) {
	list := task.NewList(nopStore{})
	_, err := list.Add("stand up", mustAlarm(t, "2024-05-01 09:00"))
	require.NoError(t, err)
	done, err := list.Add("already done", mustAlarm(t, "2024-05-01 09:00"))
	require.NoError(t, err)
	require.NoError(t, list.SetDone(done.ID, true))
	_, err = list.Add("later", mustAlarm(t, "2024-05-01 12:00"))
	require.NoError(t, err)

	rec := &recorder{}
	c := NewChecker(list, rec)

	assert.Equal(t, 0, c.Check(*mustAlarm(t, "2024-05-01 08:59")))
	assert.Equal(t, 1, c.Check(*mustAlarm(t, "2024-05-01 09:00")))
	assert.Equal(t, 0, c.Check(*mustAlarm(t, "2024-05-01 09:10")))
	assert.Equal(t, []string{"stand up"}, rec.got())

	for _, tk := range list.Snapshot() {
		if tk.Text == "stand up" {
			assert.False(t, tk.HasAlarm())
		}
	}
}

func TestCheckSurvivesPanickingNotifier(t *testing.T) {
	list := task.NewList(nopStore{})
	_, _ = list.Add("a", mustAlarm(t, "2024-05-01 09:00"))
	_, _ = list.Add("b", mustAlarm(t, "2024-05-01 09:00"))

	calls := 0
	c := NewChecker(list, NotifierFunc(func(task.Task) {
		calls++
		if calls == 1 {
			panic("speaker unplugged")
		}
	}))

	assert.Equal(t, 1, c.Check(*mustAlarm(t, "2024-05-01 09:01")))
	assert.Equal(t, 2, calls)
}

func TestRunChecksImmediatelyAndStopsOnCancel(t *testing.T) {
	list := task.NewList(nopStore{})
	_, _ = list.Add("wake up", mustAlarm(t, "2024-05-01 07:00"))

	rec := &recorder{}
	c := NewChecker(list, rec,
		WithInterval(time.Hour),
		WithClock(func() time.Time { return *mustAlarm(t, "2024-05-01 07:00") }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return len(rec.got()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunPollsOnTicker(t *testing.T) {
	list := task.NewList(nopStore{})

	var mu sync.Mutex
	now := *mustAlarm(t, "2024-05-01 07:00")
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	rec := &recorder{}
	c := NewChecker(list, rec, WithInterval(5*time.Millisecond), WithClock(clock))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	_, err := list.Add("tea", mustAlarm(t, "2024-05-01 07:05"))
	require.NoError(t, err)

	mu.Lock()
	now = *mustAlarm(t, "2024-05-01 07:06")
	mu.Unlock()

	assert.Eventually(t, func() bool { return len(rec.got()) == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	c := NewChecker(task.NewList(nopStore{}), NotifierFunc(func(task.Task) {}), WithInterval(0), WithClock(nil))
	assert.Equal(t, DefaultInterval, c.Interval())
	assert.NotNil(t, c.now)
}
