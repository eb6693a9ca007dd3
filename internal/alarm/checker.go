// Package alarm polls the task list and reports alarms that came due.
package alarm

import (
	"context"
	"fmt"
	"time"

	"smarttask/internal/logger"
	"smarttask/internal/task"
)

const DefaultInterval = 10 * time.Second

// Notifier surfaces a fired alarm to the user.
type Notifier interface {
	Notify(task.Task)
}

type NotifierFunc func(task.Task)

func (f NotifierFunc) Notify(t task.Task) { f(t) }

type Checker struct {
	list     *task.List
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

type Option func(*Checker)

func WithInterval(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

func NewChecker(list *task.List, notifier Notifier, opts ...Option) *Checker {
	c := &Checker{
		list:     list,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Interval() time.Duration { return c.interval }

// Check fires every alarm due at now and returns how many were delivered.
func (c *Checker) Check(now time.Time) int {
	fired, err := c.list.FireDue(now)
	if err != nil {
		logger.Error("Alarm state not saved", "error", err)
	}
	delivered := 0
	for _, t := range fired {
		if c.deliver(t) {
			delivered++
		}
	}
	if len(fired) > 0 {
		logger.Info("Alarms fired", "count", len(fired), "delivered", delivered)
	}
	return delivered
}

func (c *Checker) deliver(t task.Task) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", "alarm.notify", "id", t.ID, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	c.notifier.Notify(t)
	return true
}

// Run checks once right away and then on every tick until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	logger.Debug("Alarm loop started", "interval", c.interval)
	defer logger.Debug("Alarm loop stopped")

	c.Check(c.now())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(c.now())
		}
	}
}
