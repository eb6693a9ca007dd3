// Package task holds the to-do list model and its persistence.
package task

import (
	"encoding/json"
	"time"
)

// AlarmLayout is the stored alarm format, interpreted in local time.
const AlarmLayout = "2006-01-02 15:04"

type Task struct {
	ID    string
	Text  string
	Done  bool
	Alarm string
}

// wireTask is the persisted shape. A missing alarm is written as null.
type wireTask struct {
	ID    string  `json:"id,omitempty"`
	Text  string  `json:"text"`
	Done  bool    `json:"done"`
	Alarm *string `json:"alarm"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{ID: t.ID, Text: t.Text, Done: t.Done}
	if t.Alarm != "" {
		alarm := t.Alarm
		w.Alarm = &alarm
	}
	return json.Marshal(w)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.Text = w.Text
	t.Done = w.Done
	t.Alarm = ""
	if w.Alarm != nil {
		t.Alarm = *w.Alarm
	}
	return nil
}

func (t Task) HasAlarm() bool { return t.Alarm != "" }

// AlarmTime parses the stored alarm. ok is false when no alarm is set.
func (t Task) AlarmTime() (at time.Time, ok bool, err error) {
	if t.Alarm == "" {
		return time.Time{}, false, nil
	}
	at, err = ParseAlarm(t.Alarm)
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

func ParseAlarm(s string) (time.Time, error) {
	return time.ParseInLocation(AlarmLayout, s, time.Local)
}

func FormatAlarm(t time.Time) string {
	return t.In(time.Local).Format(AlarmLayout)
}

// CombineAlarm merges a picked date and a picked time of day into one local
// timestamp. Seconds are dropped.
func CombineAlarm(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, time.Local)
}
