package gui

import (
	"context"

	"fyne.io/fyne/v2/app"

	"github.com/folderglance/folderglance/internal/events"
	"github.com/folderglance/folderglance/internal/host"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/prefs"
)

// Run prepares a preview session for path and blocks in the Fyne main loop
// until the window closes. Only a root-level preparation failure is returned;
// deeper enumeration failures surface inside the window.
func Run(path string, p *prefs.Prefs, prefsPath string) error {
	logger := logging.NewLogger("gui")

	a := app.NewWithID("com.folderglance.preview")
	a.Settings().SetTheme(&glanceTheme{})

	bus := events.NewEventBus(0)
	defer bus.Close()

	provider := host.NewProvider(p, bus)

	var prepErr error
	session := provider.PreparePreview(context.Background(), path, func(err error) {
		prepErr = err
	})
	if prepErr != nil {
		return prepErr
	}

	logger.Debugf("session ready for %s (folder=%v)", session.Path, session.IsDir)

	w := NewPreviewWindow(a, session, p, prefsPath, bus)
	w.Window().ShowAndRun()
	return nil
}
