package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/appgen-labs/appgen/internal/branding"
	"github.com/appgen-labs/appgen/internal/config"
	"github.com/appgen-labs/appgen/internal/generator"
	"github.com/appgen-labs/appgen/internal/llm"
	"github.com/appgen-labs/appgen/internal/render"
	"github.com/appgen-labs/appgen/internal/templates"
	"github.com/appgen-labs/appgen/internal/values"
	"github.com/spf13/cobra"
)

// Context variable holding the normalized --version value.
const varVersion = "version"

var (
	newTemplate    string
	newPath        string
	newDescription string
	newUseLLM      bool
	newSet         []string
	newValuesFile  string
	newVersion     string
	newVerbose     bool
)

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", branding.DefaultTemplate(), "Template name")
	newCmd.Flags().StringVarP(&newPath, "path", "p", ".", "Destination base path")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Short project description")
	newCmd.Flags().BoolVar(&newUseLLM, "use-llm", false, "Generate the README via the configured LLM provider")
	newCmd.Flags().StringArrayVar(&newSet, "set", nil, "Extra template variable as key=value (repeatable)")
	newCmd.Flags().StringVar(&newValuesFile, "values", "", "YAML file of extra template variables")
	newCmd.Flags().StringVar(&newVersion, "version", "0.1.0", "Initial project version (semver)")
	newCmd.Flags().BoolVarP(&newVerbose, "verbose", "v", false, "List every generated file")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new project from a template",
	Long: `Create a new project directory <path>/<name> from a named template.

Files ending in the template suffix (default .tmpl) are rendered with the
project variables and written without the suffix. All other files are copied
as-is. Referencing a variable that was not supplied aborts the run.

Variables always available: project_name, description, year, version.

Examples:
  appgen new demo
  appgen new billing-api -t fastapi -d "Billing service" --use-llm
  appgen new tool -t go-cli --set module=github.com/acme/tool`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateProjectName(name); err != nil {
		return err
	}

	version, err := semver.StrictNewVersion(strings.TrimPrefix(newVersion, "v"))
	if err != nil {
		return fmt.Errorf("invalid --version %q: %w", newVersion, err)
	}

	extra, err := loadExtraValues()
	if err != nil {
		return err
	}
	extra[varVersion] = version.String()

	if err := llm.LoadDotEnv(); err != nil {
		return err
	}

	destRoot, err := filepath.Abs(expandHome(newPath))
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", newPath, err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var opts []generator.Option
	if newUseLLM {
		tg, err := textGeneratorFactory()
		if err != nil {
			return err
		}
		if tg == nil {
			printWarning(errOut, "OPENAI_API_KEY missing; proceeding without LLM")
		} else {
			opts = append(opts, generator.WithTextGenerator(tg))
		}
	}

	rendererOpts := []render.Option{render.WithSuffix(config.TemplateSuffix())}
	if newVerbose {
		rendererOpts = append(rendererOpts, render.WithProgress(out))
	}

	store := templateStore()
	if err := ensureBuiltin(cmd, store, newTemplate); err != nil {
		return err
	}

	gen := generator.New(store, render.New(rendererOpts...), opts...)

	result, err := gen.Create(name, newTemplate, destRoot, newDescription, extra)
	if errors.Is(err, templates.ErrTemplateNotFound) {
		return fmt.Errorf("%w; run '%s list-templates' to see installed templates or '%s init' to install the built-ins",
			err, branding.CLIName(), branding.CLIName())
	}
	if err != nil {
		return err
	}
	printSuccess(out, "Created", result.ProjectPath)
	printMuted(out, "  "+pluralFiles(len(result.Files)))

	if !gen.HasTextGenerator() {
		return nil
	}

	if err := gen.GenerateReadme(cmd.Context(), result.ProjectPath, name, newDescription); err != nil {
		printWarning(errOut, fmt.Sprintf("LLM README generation failed: %v", err))
		return nil
	}
	printSuccess(out, "README", "generated via LLM")
	return nil
}

// ensureBuiltin installs a built-in template on first use so that "new" works
// before "init" has run. Installed templates are never touched.
func ensureBuiltin(cmd *cobra.Command, store *templates.Store, name string) error {
	if !templates.IsBuiltin(name) {
		return nil
	}
	written, err := templates.SeedBuiltin(store.BaseDir(), name)
	if err != nil {
		return err
	}
	if written {
		printMuted(cmd.ErrOrStderr(), fmt.Sprintf("Installed built-in template %s into %s", name, store.BaseDir()))
	}
	return nil
}

// textGeneratorFactory builds the README generator; tests replace it.
var textGeneratorFactory = func() (llm.TextGenerator, error) {
	cfg, err := llm.LoadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.NewGenerator(), nil
}

// loadExtraValues layers the --values file under --set pairs.
func loadExtraValues() (render.Context, error) {
	layers := []render.Context{}
	if newValuesFile != "" {
		fromFile, err := values.LoadFile(newValuesFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fromFile)
	}

	fromSet, err := values.ParseSet(newSet)
	if err != nil {
		return nil, err
	}
	layers = append(layers, fromSet)

	return values.Merge(layers...), nil
}

func validateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("project name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid project name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("invalid project name %q: must not contain path separators", name)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
