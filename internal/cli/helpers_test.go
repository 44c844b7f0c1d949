package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appgen-labs/appgen/internal/branding"
	"github.com/appgen-labs/appgen/internal/llm"
)

// run executes the root command with args and returns stdout, stderr, and the
// command error. Flag globals are reset first so runs do not leak into each other.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	templatesDirFlag = ""
	newTemplate = branding.DefaultTemplate()
	newPath = "."
	newDescription = ""
	newUseLLM = false
	newSet = nil
	newValuesFile = ""
	newVersion = "0.1.0"
	newVerbose = false
	versionShort = false
	versionJSON = false
	doctorFix = false
}

// isolate points the config home at a temp dir and runs from another temp dir
// so no real user settings or .env file are read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(branding.EnvVar("HOME"), home)
	t.Setenv("OPENAI_API_KEY", "")

	wd := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home
}

// stubTextGenerator swaps the LLM factory for the duration of the test.
func stubTextGenerator(t *testing.T, tg llm.TextGenerator) {
	t.Helper()
	prev := textGeneratorFactory
	textGeneratorFactory = func() (llm.TextGenerator, error) { return tg, nil }
	t.Cleanup(func() { textGeneratorFactory = prev })
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}
