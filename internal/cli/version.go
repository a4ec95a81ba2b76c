package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folderglance/folderglance/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folderglance version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folderglance %s (built %s)\n", version.Version, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
