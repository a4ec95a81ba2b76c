package host

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/folderglance/folderglance/internal/prefs"
	"github.com/folderglance/folderglance/internal/version"
)

func TestEnsureRegisteredOncePerVersion(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("avoids invoking the real registration refresh")
	}
	path := filepath.Join(t.TempDir(), "prefs.ini")
	store := prefs.Defaults()

	did, err := EnsureRegistered(store, path, false)
	if err != nil {
		t.Fatalf("EnsureRegistered: %v", err)
	}
	if !did {
		t.Fatal("first registration should run")
	}
	if store.LastRegisteredVersion != version.Version {
		t.Errorf("recorded version = %q, want %q", store.LastRegisteredVersion, version.Version)
	}

	// The recorded version persists, so a fresh load skips the refresh.
	reloaded, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	did, err = EnsureRegistered(reloaded, path, false)
	if err != nil {
		t.Fatalf("EnsureRegistered: %v", err)
	}
	if did {
		t.Error("second registration for the same version should skip")
	}

	// Force always re-registers.
	did, err = EnsureRegistered(reloaded, path, true)
	if err != nil {
		t.Fatalf("EnsureRegistered force: %v", err)
	}
	if !did {
		t.Error("forced registration should run")
	}
}
