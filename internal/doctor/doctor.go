package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/appgen-labs/appgen/internal/branding"
	"github.com/appgen-labs/appgen/internal/llm"
	"github.com/appgen-labs/appgen/internal/platform"
	"github.com/appgen-labs/appgen/internal/render"
	"github.com/appgen-labs/appgen/internal/templates"
)

// FilePermSecure is the expected mode of a .env file holding credentials.
const FilePermSecure os.FileMode = 0600

// Status line prefixes.
const (
	statusOK   = "[ OK ]"
	statusMiss = "[MISS]"
	statusWarn = "[WARN]"
	statusFail = "[FAIL]"
	statusFix  = "[FIX ]"
	statusInfo = "[INFO]"
)

// CheckConfig reports on the config directory and file.
func CheckConfig(w io.Writer, configDir, configFile string) int {
	fmt.Fprintln(w, "Config check:")

	info, err := os.Stat(configDir)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  %s %s does not exist (created on first 'config set' or 'init')\n", statusInfo, configDir)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  %s %s: %v\n", statusFail, configDir, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  %s %s exists but is not a directory\n", statusFail, configDir)
		return 1
	}
	fmt.Fprintf(w, "  %s %s exists\n", statusOK, configDir)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(w, "  %s %s not found, using defaults\n", statusInfo, configFile)
		return 0
	}
	fmt.Fprintf(w, "  %s %s exists\n", statusOK, configFile)
	return 0
}

// CheckTemplates verifies the templates directory and inspects every template.
// provided lists the variables every run supplies; a template referring to
// anything else is reported as needing --set. With fix, a missing templates
// directory is populated with the built-in templates.
func CheckTemplates(w io.Writer, store *templates.Store, r *render.Renderer, provided []string, fix bool) int {
	fmt.Fprintln(w, "Templates check:")

	dir := store.BaseDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintf(w, "  %s %s does not exist\n", statusMiss, dir)
		if !fix {
			fmt.Fprintf(w, "         Run '%s init' to install the built-in templates\n", branding.CLIName())
			return 1
		}
		seeded, seedErr := templates.SeedBuiltins(io.Discard, dir)
		if seedErr != nil {
			fmt.Fprintf(w, "  %s Could not install templates: %v\n", statusFail, seedErr)
			return 1
		}
		fmt.Fprintf(w, "  %s Installed %s into %s\n", statusFix, strings.Join(seeded, ", "), dir)
	}

	names, err := store.List()
	if err != nil {
		fmt.Fprintf(w, "  %s %s: %v\n", statusFail, dir, err)
		return 1
	}
	if len(names) == 0 {
		fmt.Fprintf(w, "  %s %s contains no templates\n", statusWarn, dir)
		return 0
	}
	fmt.Fprintf(w, "  %s %s (%d templates)\n", statusOK, dir, len(names))

	known := make(map[string]bool, len(provided))
	for _, v := range provided {
		known[v] = true
	}

	failures := 0
	for _, name := range names {
		failures += checkTemplate(w, store, r, name, known)
	}
	return failures
}

func checkTemplate(w io.Writer, store *templates.Store, r *render.Renderer, name string, known map[string]bool) int {
	tmpl, err := store.Resolve(name)
	if err != nil {
		fmt.Fprintf(w, "  %s %s: %v\n", statusFail, name, err)
		return 1
	}

	in, err := r.Inspect(tmpl.Dir)
	if err != nil {
		fmt.Fprintf(w, "  %s %s: %v\n", statusFail, name, err)
		return 1
	}

	failures := 0
	for _, f := range in.Templated {
		if f.Err != nil {
			fmt.Fprintf(w, "  %s %s: %s -> %s: %v\n", statusFail, name, f.Path, r.OutputName(f.Path), f.Err)
			failures++
		}
	}
	if failures > 0 {
		return failures
	}

	var extra []string
	for _, v := range in.Variables() {
		if !known[v] {
			extra = append(extra, v)
		}
	}
	if len(extra) > 0 {
		fmt.Fprintf(w, "  %s %s: requires --set for %s\n", statusWarn, name, strings.Join(extra, ", "))
		return 0
	}

	fmt.Fprintf(w, "  %s %s: %d rendered, %d copied\n", statusOK, name, len(in.Templated), in.Static)
	return 0
}

// CheckLLM reports whether README generation is configured and whether the
// .env file in dir exposes credentials to other users. With fix, loose .env
// permissions are tightened.
func CheckLLM(w io.Writer, cfg *llm.Config, dir string, fix bool) int {
	fmt.Fprintln(w, "LLM check:")

	if cfg.Enabled() {
		fmt.Fprintf(w, "  %s OPENAI_API_KEY set (model %s, endpoint %s)\n", statusOK, cfg.Model, cfg.BaseURL)
	} else {
		fmt.Fprintf(w, "  %s OPENAI_API_KEY not set; --use-llm will skip README generation\n", statusInfo)
	}

	return checkEnvFilePerms(w, filepath.Join(dir, ".env"), fix)
}

func checkEnvFilePerms(w io.Writer, path string, fix bool) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	perm := info.Mode().Perm()
	if perm&0077 == 0 {
		fmt.Fprintf(w, "  %s %s (permissions %o)\n", statusOK, path, perm)
		return 0
	}

	fmt.Fprintf(w, "  %s %s has permissions %o (expected %o)\n", statusWarn, path, perm, FilePermSecure)
	if !fix {
		return 0
	}
	if err := platform.Chmod(path, FilePermSecure); err != nil {
		fmt.Fprintf(w, "  %s Could not fix permissions on %s: %v\n", statusFail, path, err)
		return 1
	}
	fmt.Fprintf(w, "  %s Fixed permissions on %s to %o\n", statusFix, path, FilePermSecure)
	return 0
}
