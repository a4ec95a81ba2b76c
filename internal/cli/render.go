package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folderglance/folderglance/internal/preview"
)

var flagRenderOut string

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a markdown or text file to standalone HTML",
	Long: `render converts a single file to HTML using the same pipeline the
preview pane uses: markdown is rendered directly, everything else is wrapped
in a syntax-highlighted code block. Output goes to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, htmlOut, err := preview.RenderFile(args[0])
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}
		if flagRenderOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), htmlOut)
			return nil
		}
		if err := os.WriteFile(flagRenderOut, []byte(htmlOut), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", flagRenderOut, err)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderOut, "output", "o", "", "write HTML to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}
