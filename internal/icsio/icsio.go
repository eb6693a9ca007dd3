// Package icsio converts tasks to and from iCalendar files.
package icsio

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"smarttask/internal/apperrors"
	"smarttask/internal/logger"
	"smarttask/internal/task"
)

const (
	ProductID = "-//smarttask//Smart Task Manager//EN"
	FileName  = "tasks.ics"

	utcLayout = "20060102T150405Z"
)

// Export renders one VTODO per task. Tasks with an alarm get a DUE and a
// display VALARM at that moment.
func Export(tasks []task.Task, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, t := range tasks {
		todo := cal.AddTodo(t.ID)
		todo.SetDtStampTime(stamp)
		todo.SetSummary(t.Text)
		status := ical.ObjectStatusNeedsAction
		if t.Done {
			status = ical.ObjectStatusCompleted
		}
		todo.SetProperty(ical.ComponentPropertyStatus, string(status))

		at, ok, err := t.AlarmTime()
		if err != nil || !ok {
			continue
		}
		due := at.UTC().Format(utcLayout)
		todo.SetProperty(ical.ComponentPropertyDue, due)
		alarm := todo.AddAlarm()
		alarm.SetProperty(ical.ComponentPropertyAction, "DISPLAY")
		alarm.SetProperty(ical.ComponentPropertyDescription, t.Text)
		alarm.SetProperty(ical.ComponentPropertyTrigger, due, &ical.KeyValues{Key: "VALUE", Value: []string{"DATE-TIME"}})
	}
	return cal.Serialize()
}

// Import reads VTODO and VEVENT components. Components without a summary
// are skipped. The due time of a todo, or the start of an event, becomes the
// task alarm.
func Import(r io.Reader) ([]task.Task, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, apperrors.New(apperrors.KindIO, "Not a valid calendar file.", fmt.Errorf("parse ics: %w", err))
	}

	var out []task.Task
	for _, todo := range cal.Todos() {
		if t, ok := fromComponent(&todo.ComponentBase, ical.ComponentPropertyDue, todo.GetDueAt); ok {
			out = append(out, t)
		}
	}
	for _, event := range cal.Events() {
		if t, ok := fromComponent(&event.ComponentBase, ical.ComponentPropertyDtStart, event.GetStartAt); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// fromComponent maps a todo or event onto a task. at resolves the component's
// time property, honouring TZID, UTC, floating and date-only values.
func fromComponent(c *ical.ComponentBase, when ical.ComponentProperty, at func() (time.Time, error)) (task.Task, bool) {
	sum := c.GetProperty(ical.ComponentPropertySummary)
	if sum == nil || strings.TrimSpace(sum.Value) == "" {
		return task.Task{}, false
	}
	t := task.Task{Text: strings.TrimSpace(sum.Value)}
	if st := c.GetProperty(ical.ComponentPropertyStatus); st != nil {
		t.Done = strings.EqualFold(st.Value, string(ical.ObjectStatusCompleted))
	}
	if c.GetProperty(when) == nil {
		return t, true
	}
	due, err := at()
	if err != nil {
		logger.Warn("Calendar time ignored", "property", string(when), "error", err)
		return t, true
	}
	t.Alarm = task.FormatAlarm(due)
	return t, true
}
