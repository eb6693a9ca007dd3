// Package ui is the Fyne front-end of the task manager.
package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smarttask/internal/alarm"
	"smarttask/internal/apperrors"
	"smarttask/internal/i18n"
	"smarttask/internal/logger"
	"smarttask/internal/task"
)

const (
	windowWidth  = 500
	windowHeight = 700
)

// Sound plays the alarm sound without blocking.
type Sound interface {
	Play()
}

type todoApp struct {
	app      fyne.App
	window   fyne.Window
	list     *task.List
	tr       *i18n.Translator
	settings settings
	sound    Sound
	checker  *alarm.Checker

	dark bool

	newTask    *widget.Entry
	search     *widget.Entry
	stats      *widget.Label
	tasksView  *fyne.Container
	picker     *alarmPicker
	langSelect *widget.Select
	banner     *banner
}

func newTodoApp(a fyne.App, w fyne.Window, list *task.List, sound Sound, alarmOpts ...alarm.Option) *todoApp {
	s := settings{prefs: a.Preferences()}
	ta := &todoApp{
		app:      a,
		window:   w,
		list:     list,
		tr:       i18n.New(s.language()),
		settings: s,
		sound:    sound,
		dark:     s.dark(),
	}
	ta.checker = alarm.NewChecker(list, alarm.NotifierFunc(ta.notify), alarmOpts...)

	ta.newTask = widget.NewEntry()
	ta.newTask.OnSubmitted = func(string) { ta.addTask() }
	ta.search = widget.NewEntry()
	ta.search.OnChanged = func(string) { ta.refreshTasks() }
	ta.stats = widget.NewLabel("")
	ta.tasksView = container.NewVBox()
	ta.picker = newAlarmPicker(w, ta.tr)
	ta.banner = newBanner()

	ta.applyTheme()
	ta.showApp()
	return ta
}

// Run opens the main window and blocks until it is closed. The alarm loop
// runs for the lifetime of the window.
func Run(a fyne.App, list *task.List, sound Sound, alarmOpts ...alarm.Option) {
	w := a.NewWindow("Smart Task Manager")
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	ta := newTodoApp(a, w, list, sound, alarmOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	safeGo("alarm.loop", func() { ta.checker.Run(ctx) })

	w.ShowAndRun()
}

// showApp rebuilds the whole window content in the current language.
func (ta *todoApp) showApp() {
	ta.window.SetTitle(ta.tr.T("title"))

	title := widget.NewLabelWithStyle(ta.tr.T("title"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	themeBtn := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), ta.toggleTheme)

	ta.langSelect = widget.NewSelect(i18n.Names(), nil)
	ta.langSelect.SetSelected(i18n.NameOf(ta.tr.Language()))
	ta.langSelect.OnChanged = func(name string) {
		if code, ok := i18n.CodeOf(name); ok {
			ta.changeLanguage(code)
		}
	}

	importBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), ta.importICS)
	exportBtn := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), ta.exportICS)

	header := container.NewHBox(title, layout.NewSpacer(), importBtn, exportBtn, themeBtn, ta.langSelect)

	addBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), ta.addTask)
	addBtn.Importance = widget.HighImportance
	controls := container.NewHBox(append(ta.picker.objects(), addBtn)...)
	inputRow := container.NewBorder(nil, nil, nil, controls, ta.newTask)

	ta.newTask.SetPlaceHolder(ta.tr.T("add_task"))
	ta.search.SetPlaceHolder(ta.tr.T("search"))
	ta.picker.refresh()

	top := container.NewVBox(header, widget.NewSeparator(), inputRow, ta.search, ta.stats, widget.NewSeparator())
	body := container.NewBorder(top, ta.banner.object(), nil, nil, container.NewVScroll(ta.tasksView))

	ta.window.SetContent(container.NewPadded(body))
	ta.refreshTasks()
}

func (ta *todoApp) addTask() {
	t, err := ta.list.Add(ta.newTask.Text, ta.picker.alarm())
	if apperrors.IsValidation(err) {
		return
	}
	if err != nil {
		ta.showError(err)
		ta.refreshTasks()
		return
	}
	logger.Info("Task added", "id", t.ID, "has_alarm", t.HasAlarm())
	ta.newTask.SetText("")
	ta.picker.clear()
	ta.refreshTasks()
}

func (ta *todoApp) toggleTask(id string, done bool) {
	if err := ta.list.SetDone(id, done); err != nil {
		ta.showError(err)
	}
	ta.refreshTasks()
}

func (ta *todoApp) deleteTask(id string) {
	if err := ta.list.Delete(id); err != nil {
		ta.showError(err)
	}
	ta.refreshTasks()
}

func (ta *todoApp) updateStats() {
	ta.stats.SetText(ta.tr.Stats(ta.list.Stats()))
}

// refreshTasks redraws the filtered list and the stats line.
func (ta *todoApp) refreshTasks() {
	ta.tasksView.Objects = nil

	tasks := ta.list.Filter(ta.search.Text)
	for _, t := range tasks {
		ta.tasksView.Add(ta.taskCard(t))
	}
	if len(tasks) == 0 {
		empty := widget.NewLabelWithStyle(ta.tr.T("no_tasks"), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
		ta.tasksView.Add(empty)
	}
	ta.tasksView.Refresh()
	ta.updateStats()
}

func (ta *todoApp) taskCard(t task.Task) fyne.CanvasObject {
	id := t.ID
	check := widget.NewCheck("", func(done bool) { ta.toggleTask(id, done) })
	check.Checked = t.Done

	var text fyne.CanvasObject
	if t.Done {
		text = strikethroughText(t.Text, theme.Color(theme.ColorNameDisabled))
	} else {
		label := widget.NewLabel(t.Text)
		label.Wrapping = fyne.TextWrapWord
		text = label
	}
	lines := container.NewVBox(text)
	if t.HasAlarm() {
		alarmText := canvas.NewText("⏰ "+t.Alarm, theme.Color(theme.ColorNamePrimary))
		alarmText.TextSize = theme.CaptionTextSize()
		lines.Add(alarmText)
	}

	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { ta.deleteTask(id) })
	del.Importance = widget.DangerImportance

	return widget.NewCard("", "", container.NewBorder(nil, nil, check, del, lines))
}

func (ta *todoApp) toggleTheme() {
	ta.dark = !ta.dark
	ta.settings.setDark(ta.dark)
	ta.applyTheme()
	ta.refreshTasks()
	logger.Debug("Theme changed", "dark", ta.dark)
}

func (ta *todoApp) applyTheme() {
	ta.app.Settings().SetTheme(newVariantTheme(ta.dark))
}

func (ta *todoApp) changeLanguage(code string) {
	if code == ta.tr.Language() {
		return
	}
	if err := ta.tr.SetLanguage(code); err != nil {
		ta.showError(err)
		return
	}
	ta.settings.setLanguage(code)
	logger.Debug("Language changed", "code", code)
	ta.showApp()
}

func (ta *todoApp) showError(err error) {
	logger.Error("Operation failed", "error", err)
	dialog.ShowError(errorForDialog(err), ta.window)
}

type publicError struct{ msg string }

func (e publicError) Error() string { return e.msg }

func errorForDialog(err error) error {
	return publicError{msg: apperrors.PublicMessage(err)}
}
