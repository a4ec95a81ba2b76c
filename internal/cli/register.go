package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folderglance/folderglance/internal/host"
)

var flagRegisterForce bool

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the preview handler with the host",
	Long: `register records the current version in the shared preference store
and asks the host to refresh its handler registry. Registration runs at most
once per installed version unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, prefsPath, err := loadPrefs()
		if err != nil {
			return err
		}
		did, err := host.EnsureRegistered(store, prefsPath, flagRegisterForce)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		if did {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered preview handler.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Already registered for this version.")
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().BoolVar(&flagRegisterForce, "force", false, "re-register even if this version already registered")
	rootCmd.AddCommand(registerCmd)
}
