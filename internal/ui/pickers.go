package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smarttask/internal/i18n"
	"smarttask/internal/task"
)

// alarmPicker collects an optional alarm from a date button and a time
// button. An alarm exists only once both parts are picked.
type alarmPicker struct {
	parent fyne.Window
	tr     *i18n.Translator

	date     *time.Time
	hour     int
	minute   int
	timeSet  bool
	dateBtn  *widget.Button
	timeBtn  *widget.Button
	clearBtn *widget.Button
}

func newAlarmPicker(parent fyne.Window, tr *i18n.Translator) *alarmPicker {
	p := &alarmPicker{parent: parent, tr: tr}
	p.dateBtn = widget.NewButtonWithIcon("", theme.GridIcon(), p.showDateDialog)
	p.timeBtn = widget.NewButtonWithIcon("", theme.HistoryIcon(), p.showTimeDialog)
	p.clearBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), p.clear)
	p.refresh()
	return p
}

// alarm returns the picked moment, or nil when date or time is missing.
func (p *alarmPicker) alarm() *time.Time {
	if p.date == nil || !p.timeSet {
		return nil
	}
	at := task.CombineAlarm(*p.date, p.hour, p.minute)
	return &at
}

func (p *alarmPicker) setDate(d time.Time) {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
	p.date = &d
	p.refresh()
}

func (p *alarmPicker) setTime(hour, minute int) {
	p.hour, p.minute, p.timeSet = hour, minute, true
	p.refresh()
}

func (p *alarmPicker) clear() {
	p.date = nil
	p.timeSet = false
	p.refresh()
}

func (p *alarmPicker) refresh() {
	if p.date != nil {
		p.dateBtn.SetText(p.date.Format("2006-01-02"))
	} else {
		p.dateBtn.SetText(p.tr.T("pick_date"))
	}
	if p.timeSet {
		p.timeBtn.SetText(fmt.Sprintf("%02d:%02d", p.hour, p.minute))
	} else {
		p.timeBtn.SetText(p.tr.T("pick_time"))
	}
	if p.date != nil || p.timeSet {
		p.clearBtn.Enable()
	} else {
		p.clearBtn.Disable()
	}
}

func (p *alarmPicker) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{p.dateBtn, p.timeBtn, p.clearBtn}
}

func (p *alarmPicker) showDateDialog() {
	nav := time.Now()
	if p.date != nil {
		nav = *p.date
	}
	nav = time.Date(nav.Year(), nav.Month(), 1, 0, 0, 0, 0, time.Local)

	var d dialog.Dialog
	grid := container.NewGridWithColumns(7)
	monthLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	var refresh func()
	refresh = func() {
		monthLabel.SetText(nav.Format("January 2006"))
		grid.Objects = nil
		for _, day := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
			grid.Add(widget.NewLabelWithStyle(day, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
		}
		for i := 0; i < mondayOffset(nav); i++ {
			grid.Add(layout.NewSpacer())
		}
		y, m, _ := nav.Date()
		today := time.Now()
		for day := 1; day <= daysIn(nav); day++ {
			picked := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
			btn := widget.NewButton(strconv.Itoa(day), func() {
				p.setDate(picked)
				if d != nil {
					d.Hide()
				}
			})
			if sameDay(picked, today) {
				btn.Importance = widget.HighImportance
			}
			grid.Add(btn)
		}
		grid.Refresh()
	}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { nav = nav.AddDate(0, -1, 0); refresh() })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { nav = nav.AddDate(0, 1, 0); refresh() })
	refresh()

	content := container.NewBorder(container.NewBorder(nil, nil, prev, next, monthLabel), nil, nil, nil, grid)
	d = dialog.NewCustom(p.tr.T("pick_date"), p.tr.T("cancel"), container.NewPadded(content), p.parent)
	d.Resize(fyne.NewSize(350, 380))
	d.Show()
}

func (p *alarmPicker) showTimeDialog() {
	hours := make([]string, 24)
	for i := range hours {
		hours[i] = fmt.Sprintf("%02d", i)
	}
	mins := make([]string, 60)
	for i := range mins {
		mins[i] = fmt.Sprintf("%02d", i)
	}

	hour, minute := p.hour, p.minute
	if !p.timeSet {
		now := time.Now()
		hour, minute = now.Hour(), now.Minute()
	}
	h := widget.NewSelect(hours, nil)
	m := widget.NewSelect(mins, nil)
	h.SetSelectedIndex(hour)
	m.SetSelectedIndex(minute)

	form := container.NewGridWithColumns(3, h, widget.NewLabelWithStyle(":", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}), m)
	dialog.ShowCustomConfirm(p.tr.T("pick_time"), "OK", p.tr.T("cancel"), container.NewPadded(form), func(ok bool) {
		if !ok {
			return
		}
		p.setTime(h.SelectedIndex(), m.SelectedIndex())
	}, p.parent)
}

func mondayOffset(first time.Time) int {
	off := int(first.Weekday())
	if off == 0 {
		off = 7
	}
	return off - 1
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	return first.AddDate(0, 1, -1).Day()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// strikethroughText draws text with a line through its middle.
func strikethroughText(text string, col color.Color) *fyne.Container {
	txt := canvas.NewText(text, col)
	line := canvas.NewRectangle(col)
	line.SetMinSize(fyne.NewSize(txt.MinSize().Width, 1))
	return container.NewStack(txt, container.NewVBox(layout.NewSpacer(), line, layout.NewSpacer()))
}
