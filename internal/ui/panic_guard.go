package ui

import (
	"fmt"

	"fyne.io/fyne/v2"

	"smarttask/internal/logger"
)

// withPanicGuard runs fn and logs a panic instead of letting it escape.
// It reports whether fn panicked.
func withPanicGuard(scope string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			panicked = true
		}
	}()
	fn()
	return false
}

// safeGo runs fn on a new goroutine; a panic is logged instead of killing the app.
func safeGo(scope string, fn func()) {
	go func() {
		withPanicGuard(scope, fn)
	}()
}

// safeDo hands fn to the UI goroutine.
func safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", func() {
		fyne.Do(func() {
			withPanicGuard(scope, fn)
		})
	})
}
