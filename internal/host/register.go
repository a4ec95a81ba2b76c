package host

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/prefs"
	"github.com/folderglance/folderglance/internal/version"
)

// EnsureRegistered asks the OS to refresh the preview registration, once per
// installed version. The version that last registered is recorded in the
// shared preference store so normal launches skip the refresh entirely.
// Pure side-effecting plumbing; failures are returned for the CLI to report
// but never block a preview.
func EnsureRegistered(store *prefs.Prefs, prefsPath string, force bool) (bool, error) {
	logger := logging.NewLogger("register")

	if !force && store.LastRegisteredVersion == version.Version {
		logger.Debug().Str("version", version.Version).Msg("registration current, skipping refresh")
		return false, nil
	}

	if err := refreshRegistration(); err != nil {
		return false, fmt.Errorf("registration refresh failed: %w", err)
	}

	store.LastRegisteredVersion = version.Version
	if err := prefs.Save(store, prefsPath); err != nil {
		return true, fmt.Errorf("registration refreshed but version not recorded: %w", err)
	}

	logger.Info().Str("version", version.Version).Msg("preview registration refreshed")
	return true, nil
}

// refreshRegistration invokes the platform's preview-cache reset. Only
// macOS has one; elsewhere this is a no-op so the command stays harmless in
// development environments.
func refreshRegistration() error {
	if runtime.GOOS != "darwin" {
		return nil
	}
	cmd := exec.Command("/usr/bin/qlmanage", "-r")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("qlmanage -r: %v: %s", err, out)
	}
	return nil
}
