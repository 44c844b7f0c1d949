//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // APPGEN_HOME, holds config.yaml
	TemplatesDir string // base directory of named templates
	DestRoot     string // where projects are created
}

// setupTestEnv creates isolated temp directories and points APPGEN_HOME at
// one of them so no user settings leak into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		DestRoot: t.TempDir(),
	}
	env.TemplatesDir = filepath.Join(env.HomeDir, "templates")

	t.Setenv("APPGEN_HOME", env.HomeDir)
	t.Setenv("OPENAI_API_KEY", "")
	return env
}

// setupTemplates writes a small set of templates covering rendered, static,
// nested, and executable files. Returns the templates directory.
func setupTemplates(t *testing.T, dir string) string {
	t.Helper()

	writeFile(t, filepath.Join(dir, "demo", "README.md.tmpl"), "# {{project_name}}\n")
	writeFile(t, filepath.Join(dir, "demo", "LICENSE"), "MIT License\n\n{{ untouched }}\n")

	writeFile(t, filepath.Join(dir, "service", "README.md.tmpl"), "# {{ project_name }}\n\n{{ description }}\n")
	writeFile(t, filepath.Join(dir, "service", "app", "main.py.tmpl"), "APP = \"{{ project_name | snake }}\"\nPORT = {{ port }}\n")
	writeFile(t, filepath.Join(dir, "service", "app", "__init__.py"), "")
	writeFile(t, filepath.Join(dir, "service", "NOTICE.tmpl"), "Copyright {{ year }} {{ author }}\n")
	writeExec(t, filepath.Join(dir, "service", "run.sh"), "#!/bin/sh\nexec python -m app\n")

	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeExec creates an executable file.
func writeExec(t *testing.T, path, content string) {
	t.Helper()
	writeFile(t, path, content)
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileEquals fails if the file content differs from want.
func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s = %q, want %q", path, string(data), want)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
