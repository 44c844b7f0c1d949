package cli

import (
	"fmt"
	"os"

	"github.com/appgen-labs/appgen/internal/config"
	"github.com/appgen-labs/appgen/internal/doctor"
	"github.com/appgen-labs/appgen/internal/generator"
	"github.com/appgen-labs/appgen/internal/llm"
	"github.com/appgen-labs/appgen/internal/render"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Install missing templates and tighten .env permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the appgen installation",
	Long: `Run diagnostic checks on the config directory, every installed template,
and the LLM settings used by 'new --use-llm'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if err := llm.LoadDotEnv(); err != nil {
			return err
		}
		cfg, err := llm.LoadConfig()
		if err != nil {
			return err
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		provided := []string{generator.VarProjectName, generator.VarDescription, generator.VarYear, varVersion}
		renderer := render.New(render.WithSuffix(config.TemplateSuffix()))

		failures := doctor.CheckConfig(out, config.Dir(), config.FilePath())
		failures += doctor.CheckTemplates(out, templateStore(), renderer, provided, doctorFix)
		failures += doctor.CheckLLM(out, cfg, wd, doctorFix)

		if failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", failures)
		}
		fmt.Fprintln(out)
		printSuccess(out, "OK", "no problems found")
		return nil
	},
}
