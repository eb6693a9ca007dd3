package task

import (
	"encoding/json"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttask/internal/apperrors"
)

func TestPrefsStoreRoundTripThroughPreferences(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	store := NewPrefsStore(prefs)

	tasks := []Task{
		{ID: "a", Text: "pay rent", Alarm: "2024-02-01 09:00"},
		{ID: "b", Text: "stretch", Done: true},
	}
	require.NoError(t, store.Save(tasks))

	got, err := NewPrefsStore(prefs).Load()
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestPrefsStoreEmpty(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	store := NewPrefsStore(prefs)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save(nil))
	assert.Equal(t, "[]", prefs.String(StorageKey))
}

func TestPrefsStoreCorruptBlob(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	prefs.SetString(StorageKey, "{not json")

	_, err := NewPrefsStore(prefs).Load()
	k, ok := apperrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindStorage, k)
}

func TestWireFormatMatchesBlobShape(t *testing.T) {
	data, err := json.Marshal([]Task{{ID: "a", Text: "x"}, {ID: "b", Text: "y", Done: true, Alarm: "2024-01-02 03:04"}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"a","text":"x","done":false,"alarm":null},{"id":"b","text":"y","done":true,"alarm":"2024-01-02 03:04"}]`,
		string(data))

	var legacy []Task
	require.NoError(t, json.Unmarshal([]byte(`[{"text":"old","done":false,"alarm":null}]`), &legacy))
	assert.Equal(t, []Task{{Text: "old"}}, legacy)
}

func TestCombineAlarmDropsSeconds(t *testing.T) {
	date := time.Date(2024, 7, 9, 23, 59, 59, 0, time.Local)
	got := CombineAlarm(date, 6, 5)
	assert.Equal(t, "2024-07-09 06:05", FormatAlarm(got))
	assert.Zero(t, got.Second())
}

func TestAlarmTime(t *testing.T) {
	_, ok, err := Task{}.AlarmTime()
	assert.False(t, ok)
	assert.NoError(t, err)

	got, ok, err := Task{Alarm: "2024-12-31 18:45"}.AlarmTime()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 18, got.Hour())

	_, _, err = Task{Alarm: "31/12/2024"}.AlarmTime()
	assert.Error(t, err)
}
