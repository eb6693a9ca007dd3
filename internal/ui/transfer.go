package ui

import (
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"smarttask/internal/apperrors"
	"smarttask/internal/icsio"
	"smarttask/internal/logger"
)

func (ta *todoApp) importICS() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ta.showError(apperrors.IO(err))
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		n, err := ta.importFrom(reader, reader.URI().Name())
		if err != nil {
			ta.showError(err)
			return
		}
		dialog.ShowInformation(ta.tr.T("import"), ta.tr.Count("imported", n), ta.window)
	}, ta.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	fd.Show()
}

func (ta *todoApp) importFrom(r io.Reader, source string) (int, error) {
	tasks, err := icsio.Import(r)
	if err != nil {
		return 0, err
	}
	n, err := ta.list.Import(tasks, time.Now())
	logger.Info("Tasks imported", "source", source, "count", n)
	ta.refreshTasks()
	return n, err
}

func (ta *todoApp) exportICS() {
	data := icsio.Export(ta.list.Snapshot(), time.Now())
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ta.showError(apperrors.IO(err))
			return
		}
		if writer == nil {
			return
		}
		if _, err := writer.Write([]byte(data)); err != nil {
			_ = writer.Close()
			ta.showError(apperrors.IO(err))
			return
		}
		if err := writer.Close(); err != nil {
			ta.showError(apperrors.IO(err))
			return
		}
		logger.Info("Tasks exported", "target", writer.URI().Name())
		dialog.ShowInformation(ta.tr.T("export"), ta.tr.T("exported"), ta.window)
	}, ta.window)
	fd.SetFileName(icsio.FileName)
	fd.Show()
}
