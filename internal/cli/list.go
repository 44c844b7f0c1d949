package cli

import (
	"fmt"

	"github.com/appgen-labs/appgen/internal/branding"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listTemplatesCmd)
}

var listTemplatesCmd = &cobra.Command{
	Use:     "list-templates",
	Aliases: []string{"list", "ls"},
	Short:   "List available templates",
	Long:    `List the templates found in the templates directory, one per line.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := templateStore()
		names, err := store.List()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			printWarning(cmd.ErrOrStderr(), "No templates found")
			return fmt.Errorf("no templates in %s; run '%s init' to install the built-in templates",
				store.BaseDir(), branding.CLIName())
		}

		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", name)
		}
		return nil
	},
}
