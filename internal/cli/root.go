package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/appgen-labs/appgen/internal/branding"
	"github.com/appgen-labs/appgen/internal/config"
	"github.com/appgen-labs/appgen/internal/templates"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Shared flag for commands that read templates.
var templatesDirFlag string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds new application projects from directory-based templates
and can ask an LLM to write the project README.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&templatesDirFlag, "templates-dir", "", "Templates directory (default: ~/.appgen/templates)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// templatesDir returns the --templates-dir flag or the configured default.
func templatesDir() string {
	if templatesDirFlag != "" {
		return templatesDirFlag
	}
	return config.TemplatesDir()
}

func templateStore() *templates.Store {
	return templates.NewStore(templatesDir())
}
