package task

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smarttask/internal/apperrors"
	"smarttask/internal/logger"
)

// List is the in-memory task list. Every mutation writes the whole list back
// to the store. It is safe for use by the UI and the alarm loop at once.
type List struct {
	mu    sync.Mutex
	tasks []Task
	store Store
	newID func() string
}

func NewList(store Store) *List {
	return &List{
		store: store,
		newID: uuid.NewString,
	}
}

// Load replaces the in-memory list with the stored one. On a corrupt blob the
// list is left empty and the error is returned.
func (l *List) Load() error {
	tasks, err := l.store.Load()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = nil
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = l.newID()
		}
		l.tasks = append(l.tasks, t)
	}
	return nil
}

// Add appends a new undone task. alarm may be nil.
func (l *List) Add(text string, alarm *time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, apperrors.Validation("Task text is empty.")
	}
	t := Task{Text: text}
	if alarm != nil {
		t.Alarm = FormatAlarm(*alarm)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t.ID = l.newID()
	l.tasks = append(l.tasks, t)
	logger.Debug("Task added", "id", t.ID, "alarm", t.Alarm)
	return t, l.saveLocked()
}

func (l *List) SetDone(id string, done bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return apperrors.NotFound("")
	}
	l.tasks[i].Done = done
	return l.saveLocked()
}

func (l *List) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return apperrors.NotFound("")
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return l.saveLocked()
}

// Import appends tasks read from elsewhere, giving each a fresh ID. Alarms of
// undone tasks that are already due at now are dropped so an old calendar
// does not fire all at once.
func (l *List) Import(tasks []Task, now time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			continue
		}
		if !t.Done {
			if at, ok, err := t.AlarmTime(); err != nil || (ok && !now.Before(at)) {
				t.Alarm = ""
			}
		}
		t.ID = l.newID()
		l.tasks = append(l.tasks, t)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return n, l.saveLocked()
}

// Filter returns the tasks whose text contains query, ignoring case.
func (l *List) Filter(query string) []Task {
	query = strings.ToLower(query)

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Text), query) {
			out = append(out, t)
		}
	}
	return out
}

func (l *List) Snapshot() []Task {
	return l.Filter("")
}

// Stats counts over the whole list, regardless of any filter.
func (l *List) Stats() (total, done int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.tasks {
		if t.Done {
			done++
		}
	}
	return len(l.tasks), done
}

// FireDue clears and returns every alarm on an undone task that is due at
// now. A cleared alarm is persisted, so it never fires twice. Alarms that do
// not parse are cleared as well and are not returned.
func (l *List) FireDue(now time.Time) ([]Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var fired []Task
	changed := false
	for i := range l.tasks {
		t := &l.tasks[i]
		if t.Done {
			continue
		}
		at, ok, err := t.AlarmTime()
		if err != nil {
			logger.Warn("Dropping unreadable alarm", "id", t.ID, "alarm", t.Alarm, "error", err)
			t.Alarm = ""
			changed = true
			continue
		}
		if !ok || now.Before(at) {
			continue
		}
		fired = append(fired, *t)
		t.Alarm = ""
		changed = true
	}
	if !changed {
		return fired, nil
	}
	if err := l.saveLocked(); err != nil {
		return fired, fmt.Errorf("persist fired alarms: %w", err)
	}
	return fired, nil
}

func (l *List) indexLocked(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) saveLocked() error {
	snapshot := make([]Task, len(l.tasks))
	copy(snapshot, l.tasks)
	if err := l.store.Save(snapshot); err != nil {
		logger.Error("Failed to save tasks", "count", len(snapshot), "error", err)
		return err
	}
	return nil
}
