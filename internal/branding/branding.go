// Package branding provides compile-time identity values for the CLI.
//
// Values come from branding.yaml in this package, baked into the binary with
// //go:embed. Hard defaults apply when a key is missing from the file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	DefaultTemplate string `yaml:"default_template"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:         "appgen",
			DisplayName:     "AppGen",
			Description:     "Scaffold new application projects from templates",
			HomeDir:         ".appgen",
			EnvPrefix:       "APPGEN",
			DefaultTemplate: "fastapi",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "appgen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AppGen").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".appgen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "APPGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultTemplate returns the template used by "new" when --template is omitted.
func DefaultTemplate() string { load(); return defaults.DefaultTemplate }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("templates_dir") → "APPGEN_TEMPLATES_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
