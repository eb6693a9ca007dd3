// Package i18n holds the two display languages of the app.
package i18n

import (
	"fmt"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"smarttask/internal/apperrors"
)

const (
	Indonesian = "id"
	English    = "en"

	Default = Indonesian
)

type Language struct {
	Code string
	Name string
}

// Languages lists the selectable languages in display order.
var Languages = []Language{
	{Code: Indonesian, Name: "Indonesia"},
	{Code: English, Name: "English"},
}

var messages = map[string][]*goi18n.Message{
	Indonesian: {
		{ID: "title", Other: "Manajer Tugas Pintar"},
		{ID: "add_task", Other: "Tambah tugas..."},
		{ID: "search", Other: "Cari tugas..."},
		{ID: "total", Other: "Total"},
		{ID: "done", Other: "Selesai"},
		{ID: "pick_date", Other: "Tanggal"},
		{ID: "pick_time", Other: "Jam"},
		{ID: "import", Other: "Impor .ICS"},
		{ID: "export", Other: "Ekspor .ICS"},
		{ID: "imported", Other: "{{.Count}} tugas diimpor"},
		{ID: "exported", Other: "Tugas diekspor"},
		{ID: "alarm_title", Other: "Pengingat tugas"},
		{ID: "no_tasks", Other: "Belum ada tugas"},
		{ID: "cancel", Other: "Batal"},
	},
	English: {
		{ID: "title", Other: "Smart Task Manager"},
		{ID: "add_task", Other: "Add task..."},
		{ID: "search", Other: "Search task..."},
		{ID: "total", Other: "Total"},
		{ID: "done", Other: "Completed"},
		{ID: "pick_date", Other: "Date"},
		{ID: "pick_time", Other: "Time"},
		{ID: "import", Other: "Import .ICS"},
		{ID: "export", Other: "Export .ICS"},
		{ID: "imported", One: "{{.Count}} task imported", Other: "{{.Count}} tasks imported"},
		{ID: "exported", Other: "Tasks exported"},
		{ID: "alarm_title", Other: "Task reminder"},
		{ID: "no_tasks", Other: "No tasks yet"},
		{ID: "cancel", Other: "Cancel"},
	},
}

// bundle falls back to English for keys a language lacks.
var bundle = newBundle()

func newBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	for code, msgs := range messages {
		b.MustAddMessages(language.MustParse(code), msgs...)
	}
	return b
}

// Translator resolves keys in the current language.
type Translator struct {
	mu   sync.RWMutex
	code string
	loc  *goi18n.Localizer
}

func New(code string) *Translator {
	tr := &Translator{code: Default, loc: goi18n.NewLocalizer(bundle, Default)}
	_ = tr.SetLanguage(code)
	return tr
}

func Supported(code string) bool {
	_, ok := messages[code]
	return ok
}

func (tr *Translator) SetLanguage(code string) error {
	if !Supported(code) {
		return apperrors.Validation(fmt.Sprintf("Unsupported language %q.", code))
	}
	loc := goi18n.NewLocalizer(bundle, code)
	tr.mu.Lock()
	tr.code = code
	tr.loc = loc
	tr.mu.Unlock()
	return nil
}

func (tr *Translator) Language() string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.code
}

func (tr *Translator) localizer() *goi18n.Localizer {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.loc
}

// T looks key up in the current language, then English, then returns key.
func (tr *Translator) T(key string) string {
	return tr.localize(&goi18n.LocalizeConfig{MessageID: key})
}

// Count renders a message that takes a {{.Count}} with the plural form for n.
func (tr *Translator) Count(key string, n int) string {
	return tr.localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
}

func (tr *Translator) localize(lc *goi18n.LocalizeConfig) string {
	s, err := tr.localizer().Localize(lc)
	if err != nil {
		return lc.MessageID
	}
	return s
}

// Stats renders the "Total: N | Completed: M" line.
func (tr *Translator) Stats(total, done int) string {
	return fmt.Sprintf("%s: %d | %s: %d", tr.T("total"), total, tr.T("done"), done)
}

// NameOf returns the display name for a language code.
func NameOf(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// CodeOf is the inverse of NameOf.
func CodeOf(name string) (string, bool) {
	for _, l := range Languages {
		if l.Name == name {
			return l.Code, true
		}
	}
	return "", false
}

func Names() []string {
	out := make([]string, len(Languages))
	for i, l := range Languages {
		out[i] = l.Name
	}
	return out
}
