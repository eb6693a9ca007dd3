package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"smarttask/internal/apperrors"
)

// StorageKey is the client storage key holding the task blob.
const StorageKey = "tasks"

type Store interface {
	Load() ([]Task, error)
	Save([]Task) error
}

// KV is the subset of fyne.Preferences the store needs.
type KV interface {
	String(key string) string
	SetString(key string, value string)
}

// PrefsStore keeps the whole list as one JSON string under StorageKey.
type PrefsStore struct {
	kv KV
}

func NewPrefsStore(kv KV) *PrefsStore {
	return &PrefsStore{kv: kv}
}

func (s *PrefsStore) Load() ([]Task, error) {
	raw := strings.TrimSpace(s.kv.String(StorageKey))
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("decode %q: %w", StorageKey, err))
	}
	return tasks, nil
}

func (s *PrefsStore) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("encode %q: %w", StorageKey, err))
	}
	s.kv.SetString(StorageKey, string(data))
	return nil
}
