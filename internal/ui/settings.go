package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"smarttask/internal/i18n"
	"smarttask/internal/logger"
)

const (
	prefLanguage = "Language"
	prefTheme    = "Theme"

	themeLight = "light"
	themeDark  = "dark"
)

// settings are the UI choices kept in client storage next to the tasks.
type settings struct {
	prefs fyne.Preferences
}

func (s settings) language() string {
	code := s.prefs.StringWithFallback(prefLanguage, i18n.Default)
	if !i18n.Supported(code) {
		logger.Warn("Unsupported stored language, using default", "requested", code, "effective", i18n.Default)
		return i18n.Default
	}
	return code
}

func (s settings) setLanguage(code string) {
	s.prefs.SetString(prefLanguage, code)
}

func (s settings) dark() bool {
	return s.prefs.StringWithFallback(prefTheme, themeLight) == themeDark
}

func (s settings) setDark(dark bool) {
	v := themeLight
	if dark {
		v = themeDark
	}
	s.prefs.SetString(prefTheme, v)
}

// variantTheme pins the default theme to one variant regardless of the OS.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(dark bool) fyne.Theme {
	v := theme.VariantLight
	if dark {
		v = theme.VariantDark
	}
	return variantTheme{Theme: theme.DefaultTheme(), variant: v}
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}
