package ui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"smarttask/internal/logger"
	"smarttask/internal/task"
)

const bannerDuration = 6 * time.Second

var bannerColor = color.NRGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xee}

// banner is a transient message strip at the bottom of the window.
type banner struct {
	mu   sync.Mutex
	gen  uint64
	text *canvas.Text
	box  *fyne.Container
}

func newBanner() *banner {
	b := &banner{text: canvas.NewText("", color.White)}
	b.text.TextStyle = fyne.TextStyle{Bold: true}
	bg := canvas.NewRectangle(bannerColor)
	bg.CornerRadius = 6
	b.box = container.NewStack(bg, container.NewPadded(b.text))
	b.box.Hide()
	return b
}

func (b *banner) object() fyne.CanvasObject { return b.box }

// show displays msg and hides it after d unless a newer message replaced it.
// It must be called on the UI goroutine.
func (b *banner) show(msg string, d time.Duration) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	b.text.Text = msg
	b.text.Refresh()
	b.box.Show()

	time.AfterFunc(d, func() {
		safeDo("banner.hide", func() {
			b.mu.Lock()
			stale := gen != b.gen
			b.mu.Unlock()
			if !stale {
				b.box.Hide()
			}
		})
	})
}

func (b *banner) message() string { return b.text.Text }

func (b *banner) visible() bool { return b.box.Visible() }

// notify is called from the alarm goroutine.
func (ta *todoApp) notify(t task.Task) {
	if ta.sound != nil {
		ta.sound.Play()
	}
	safeDo("alarm.notify", func() { ta.showAlarm(t) })
}

func (ta *todoApp) showAlarm(t task.Task) {
	msg := "⏰ " + t.Text
	logger.Info("Alarm due", "id", t.ID, "alarm", t.Alarm)
	ta.banner.show(msg, bannerDuration)
	ta.app.SendNotification(fyne.NewNotification(ta.tr.T("alarm_title"), t.Text))
	ta.refreshTasks()
}
