package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeTree creates files under root from a map of slash paths to contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readOutput(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("%s should not exist", path)
	}
}

func TestRenderMirrorsTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "demo")

	license := "MIT License\n\x00binary-ish\xff\n"
	writeTree(t, src, map[string]string{
		"README.md.tmpl":           "# {{project_name}}\n",
		"LICENSE":                  license,
		"app/main.py.tmpl":         "app = FastAPI(title=\"{{ project_name }}\")\n",
		"app/__init__.py":          "",
		"docs/guide/intro.md":      "static {{ not_rendered }}\n",
		"docs/guide/year.txt.tmpl": "{{ year }}",
	})
	if err := os.MkdirAll(filepath.Join(src, "empty", "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx := Context{"project_name": "demo", "description": "", "year": 2026}
	result, err := New().Render(src, dst, ctx)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wantFiles := []string{
		"LICENSE",
		"README.md",
		"app/__init__.py",
		"app/main.py",
		"docs/guide/intro.md",
		"docs/guide/year.txt",
	}
	if !reflect.DeepEqual(result.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", result.Files, wantFiles)
	}
	if result.OutputDir != dst {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, dst)
	}

	if got := readOutput(t, dst, "README.md"); got != "# demo\n" {
		t.Errorf("README.md = %q, want %q", got, "# demo\n")
	}
	if got := readOutput(t, dst, "LICENSE"); got != license {
		t.Errorf("LICENSE not byte-identical: %q", got)
	}
	if got := readOutput(t, dst, "app/main.py"); !strings.Contains(got, `title="demo"`) {
		t.Errorf("app/main.py = %q", got)
	}
	if got := readOutput(t, dst, "docs/guide/intro.md"); got != "static {{ not_rendered }}\n" {
		t.Errorf("static file was modified: %q", got)
	}
	if got := readOutput(t, dst, "docs/guide/year.txt"); got != "2026" {
		t.Errorf("year.txt = %q, want 2026", got)
	}

	info, err := os.Stat(filepath.Join(dst, "empty", "nested"))
	if err != nil || !info.IsDir() {
		t.Errorf("empty directory not mirrored: %v", err)
	}
	assertNotExists(t, filepath.Join(dst, "README.md.tmpl"))
}

func TestRenderPreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported on windows")
	}

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"run.sh":        "#!/bin/sh\n",
		"build.sh.tmpl": "#!/bin/sh\necho {{ project_name }}\n",
		"secret.env":    "KEY=1\n",
	})
	for name, mode := range map[string]os.FileMode{"run.sh": 0755, "build.sh.tmpl": 0750, "secret.env": 0600} {
		if err := os.Chmod(filepath.Join(src, name), mode); err != nil {
			t.Fatal(err)
		}
	}
	mtime := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(src, "run.sh"), mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if _, err := New().Render(src, dst, Context{"project_name": "demo"}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for name, want := range map[string]os.FileMode{"run.sh": 0755, "build.sh": 0750, "secret.env": 0600} {
		info, err := os.Stat(filepath.Join(dst, name))
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != want {
			t.Errorf("%s permissions = %o, want %o", name, perm, want)
		}
	}

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("run.sh mtime = %v, want %v", info.ModTime(), mtime)
	}
}

func TestRenderOutputCollision(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"static and templated file", map[string]string{
			"README.md":      "static\n",
			"README.md.tmpl": "# {{ project_name }}\n",
		}, "README.md"},
		{"directory and templated file", map[string]string{
			"docs/index.md": "x",
			"docs.tmpl":     "{{ project_name }}",
		}, "docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			dst := filepath.Join(t.TempDir(), "out")
			writeTree(t, src, tt.files)

			_, err := New().Render(src, dst, Context{"project_name": "demo"})
			var collision *OutputCollisionError
			if !errors.As(err, &collision) {
				t.Fatalf("Render() error = %v, want OutputCollisionError", err)
			}
			if !errors.Is(err, ErrOutputCollision) {
				t.Errorf("error should match ErrOutputCollision")
			}
			if collision.Output != tt.want {
				t.Errorf("Output = %q, want %q", collision.Output, tt.want)
			}
			assertNotExists(t, dst)
		})
	}
}

func TestRenderUndefinedVariableWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeTree(t, src, map[string]string{
		"A.md.tmpl": "# {{ project_name }}\n",
		"B.md":      "static\n",
		"Z.md.tmpl": "by {{ author }}\n",
	})

	_, err := New().Render(src, dst, Context{"project_name": "demo"})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("error = %v, want ErrUndefinedVariable", err)
	}
	var uv *UndefinedVariableError
	if errors.As(err, &uv) && (uv.Name != "author" || uv.File != "Z.md.tmpl") {
		t.Errorf("error = %+v, want author in Z.md.tmpl", uv)
	}

	assertNotExists(t, filepath.Join(dst, "A.md"))
	assertNotExists(t, filepath.Join(dst, "B.md"))
	assertNotExists(t, filepath.Join(dst, "Z.md"))
}

func TestRenderOverwritesCollidingFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"README.md.tmpl": "# {{ project_name }}\n"})
	writeTree(t, dst, map[string]string{
		"README.md": "old readme that is much longer than the new one\n",
		"keep.txt":  "untouched\n",
	})

	if _, err := New().Render(src, dst, Context{"project_name": "demo"}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if got := readOutput(t, dst, "README.md"); got != "# demo\n" {
		t.Errorf("README.md = %q, want %q", got, "# demo\n")
	}
	if got := readOutput(t, dst, "keep.txt"); got != "untouched\n" {
		t.Errorf("unrelated file changed: %q", got)
	}
}

func TestRenderCustomSuffix(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"main.py.j2":     "{{ project_name }}",
		"notes.txt.tmpl": "{{ project_name }}",
	})

	r := New(WithSuffix(".j2"))
	if r.Suffix() != ".j2" {
		t.Fatalf("Suffix() = %q", r.Suffix())
	}
	result, err := r.Render(src, dst, Context{"project_name": "demo"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !reflect.DeepEqual(result.Files, []string{"main.py", "notes.txt.tmpl"}) {
		t.Errorf("Files = %v", result.Files)
	}
	if got := readOutput(t, dst, "main.py"); got != "demo" {
		t.Errorf("main.py = %q", got)
	}
	if got := readOutput(t, dst, "notes.txt.tmpl"); got != "{{ project_name }}" {
		t.Errorf("notes.txt.tmpl should be copied verbatim, got %q", got)
	}
}

func TestRenderBareSuffixFileIsStatic(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{".tmpl": "{{ missing }}"})

	result, err := New().Render(src, dst, Context{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !reflect.DeepEqual(result.Files, []string{".tmpl"}) {
		t.Errorf("Files = %v", result.Files)
	}
}

func TestRenderFollowsFileSymlinks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	outside := filepath.Join(t.TempDir(), "shared.txt")
	if err := os.WriteFile(outside, []byte("shared\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(src, "shared.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if _, err := New().Render(src, dst, Context{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	info, err := os.Lstat(filepath.Join(dst, "shared.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("expected a regular file copy, got a symlink")
	}
	if got := readOutput(t, dst, "shared.txt"); got != "shared\n" {
		t.Errorf("shared.txt = %q", got)
	}
}

func TestRenderMissingTemplateDir(t *testing.T) {
	_, err := New().Render(filepath.Join(t.TempDir(), "absent"), t.TempDir(), Context{})
	if err == nil {
		t.Fatal("expected error for missing template directory")
	}
}

func TestRenderProgress(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})

	var buf bytes.Buffer
	if _, err := New(WithProgress(&buf)).Render(src, dst, Context{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Generated: "+filepath.Join(dst, "a.txt")) {
		t.Errorf("progress output = %q", buf.String())
	}
}

type recordingEngine struct {
	names []string
}

func (e *recordingEngine) RenderText(name, text string, data Context) (string, error) {
	e.names = append(e.names, name)
	return strings.ToUpper(text), nil
}

func TestRenderWithEngine(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"sub/x.txt.tmpl": "hello"})

	eng := &recordingEngine{}
	if _, err := New(WithEngine(eng)).Render(src, dst, Context{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !reflect.DeepEqual(eng.names, []string{"sub/x.txt.tmpl"}) {
		t.Errorf("engine saw %v", eng.names)
	}
	if got := readOutput(t, dst, "sub/x.txt"); got != "HELLO" {
		t.Errorf("x.txt = %q, want HELLO", got)
	}
}
