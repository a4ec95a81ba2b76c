// Package prefs provides the display preference store shared between the
// host application and the preview renderer. The store is a small INI file
// under a fixed group-identifier directory; a missing file yields defaults
// without error, so the renderer never depends on the host having run first.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/ini.v1"
)

// GroupID is the fixed shared-storage group identifier. Both the host app
// and the preview renderer resolve the same directory from it.
const GroupID = "group.com.folderglance.preview"

// Prefs holds the persisted display toggles. Only a process-local cached
// copy lives in memory; the file is the authoritative state.
//
// INI format:
//
//	[display]
//	show_hidden = false
//	sort_key = name
//	sort_ascending = true
//	filter = all
//	icon_size = 192
//
//	[registration]
//	last_registered_version = v1.3.0
type Prefs struct {
	// Display toggles
	ShowHidden    bool
	SortKey       string // "name", "date", "size", "kind"
	SortAscending bool
	Filter        string // "all", "folders", "images", "documents", "media"
	IconSize      int    // large fallback icon edge in pixels

	// LastRegisteredVersion records the app version that last refreshed the
	// preview registration with the OS. Used by the one-shot register path.
	LastRegisteredVersion string
}

// Defaults returns a Prefs with the hardcoded fallback values used whenever
// the shared store is absent.
func Defaults() *Prefs {
	return &Prefs{
		ShowHidden:    false,
		SortKey:       "name",
		SortAscending: true,
		Filter:        "all",
		IconSize:      192,
	}
}

// DefaultPath returns the shared preference file path for the group.
//   - macOS: ~/Library/Group Containers/<GroupID>/prefs.ini
//   - elsewhere: <UserConfigDir>/folderglance/prefs.ini
func DefaultPath() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Group Containers", GroupID, "prefs.ini"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("no config directory available")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "folderglance", "prefs.ini"), nil
}

// Load reads preferences from path. An empty path uses DefaultPath. A
// missing file returns Defaults with no error; a present but unparsable
// file is an error so silent preference loss is visible.
func Load(path string) (*Prefs, error) {
	p := Defaults()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return p, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	display := iniFile.Section("display")
	p.ShowHidden = display.Key("show_hidden").MustBool(p.ShowHidden)
	p.SortKey = display.Key("sort_key").MustString(p.SortKey)
	p.SortAscending = display.Key("sort_ascending").MustBool(p.SortAscending)
	p.Filter = display.Key("filter").MustString(p.Filter)
	p.IconSize = display.Key("icon_size").MustInt(p.IconSize)

	registration := iniFile.Section("registration")
	p.LastRegisteredVersion = registration.Key("last_registered_version").String()

	return p, nil
}

// Save writes preferences to path atomically (temp file + rename), creating
// parent directories as needed. An empty path uses DefaultPath.
func Save(p *Prefs, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to determine preference path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create preference directory: %w", err)
	}

	iniFile := ini.Empty()

	display, err := iniFile.NewSection("display")
	if err != nil {
		return fmt.Errorf("failed to create display section: %w", err)
	}
	display.Key("show_hidden").SetValue(fmt.Sprintf("%t", p.ShowHidden))
	display.Key("sort_key").SetValue(p.SortKey)
	display.Key("sort_ascending").SetValue(fmt.Sprintf("%t", p.SortAscending))
	display.Key("filter").SetValue(p.Filter)
	display.Key("icon_size").SetValue(fmt.Sprintf("%d", p.IconSize))

	registration, err := iniFile.NewSection("registration")
	if err != nil {
		return fmt.Errorf("failed to create registration section: %w", err)
	}
	registration.Key("last_registered_version").SetValue(p.LastRegisteredVersion)

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set preference permissions: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
