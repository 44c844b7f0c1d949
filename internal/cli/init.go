package cli

import (
	"fmt"

	"github.com/appgen-labs/appgen/internal/templates"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the built-in templates",
	Long: `Write the templates compiled into the binary to the templates directory.

Templates that already exist there are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := templatesDir()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Installing built-in templates into %s\n", dir)

		seeded, err := templates.SeedBuiltins(out, dir)
		if err != nil {
			return fmt.Errorf("installing templates: %w", err)
		}

		if len(seeded) == 0 {
			printMuted(out, "\nAll built-in templates are already installed.")
			return nil
		}
		fmt.Fprintln(out)
		printSuccess(out, "Installed", fmt.Sprintf("%d template(s)", len(seeded)))
		return nil
	},
}
