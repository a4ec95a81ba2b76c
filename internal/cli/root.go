// Package cli defines the command line surface. The default command opens
// the interactive folder preview; subcommands cover standalone rendering and
// host registration.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/folderglance/folderglance/internal/gui"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/prefs"
	"github.com/folderglance/folderglance/internal/version"
)

var (
	flagVerbose    bool
	flagDebug      bool
	flagShowHidden bool
	flagPrefsPath  string
)

var rootCmd = &cobra.Command{
	Use:   "folderglance [path]",
	Short: "Folder preview with sortable listing and live file previews",
	Long: `folderglance renders a browsable preview of a folder: its immediate
children in a sortable, filterable outline, with image, text, and markdown
previews alongside. Pointing it at a single file previews just that file.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case flagDebug:
			logging.SetGlobalLevel(zerolog.DebugLevel)
		case flagVerbose:
			logging.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", path, err)
		}

		store, prefsPath, err := loadPrefs()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("show-hidden") {
			store.ShowHidden = flagShowHidden
		}
		return gui.Run(abs, store, prefsPath)
	},
}

// loadPrefs resolves the preference file location and loads it, falling back
// to defaults when the file does not exist yet.
func loadPrefs() (*prefs.Prefs, string, error) {
	path := flagPrefsPath
	if path == "" {
		var err error
		path, err = prefs.DefaultPath()
		if err != nil {
			return nil, "", fmt.Errorf("locating preferences: %w", err)
		}
	}
	store, err := prefs.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading preferences: %w", err)
	}
	return store, path, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable informational logging")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagPrefsPath, "prefs", "", "override the preference file location")
	rootCmd.Flags().BoolVar(&flagShowHidden, "show-hidden", false, "include hidden entries in the listing")

	rootCmd.SetVersionTemplate(fmt.Sprintf("folderglance {{.Version}} (built %s)\n", version.BuildTime))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
