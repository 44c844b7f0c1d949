package templates

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/appgen-labs/appgen/internal/platform"
)

// builtinRoot is the directory inside builtinFS holding one subdirectory per template.
const builtinRoot = "builtin"

//go:embed all:builtin
var builtinFS embed.FS

// Permissions applied to seeded files. Embedded files carry no useful mode.
const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
	execPerm os.FileMode = 0755
)

// Builtins returns the names of the templates compiled into the binary.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, builtinRoot)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is compiled into the binary.
func IsBuiltin(name string) bool {
	for _, b := range Builtins() {
		if b == name {
			return true
		}
	}
	return false
}

// SeedBuiltin writes the built-in template name into baseDir unless a
// directory of that name already exists. It reports whether it wrote anything.
func SeedBuiltin(baseDir, name string) (bool, error) {
	if !IsBuiltin(name) {
		return false, fmt.Errorf("%w: %q is not a built-in template", ErrTemplateNotFound, name)
	}

	dst := filepath.Join(baseDir, name)
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(baseDir, dirPerm); err != nil {
		return false, fmt.Errorf("creating templates directory %s: %w", baseDir, err)
	}
	if err := extract(path.Join(builtinRoot, name), dst); err != nil {
		return false, fmt.Errorf("seeding template %s: %w", name, err)
	}
	return true, nil
}

// SeedBuiltins writes every built-in template into baseDir. Templates whose
// directory already exists are left alone. Progress is printed to w. It
// returns the names of the templates that were written.
func SeedBuiltins(w io.Writer, baseDir string) ([]string, error) {
	if err := os.MkdirAll(baseDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating templates directory %s: %w", baseDir, err)
	}

	var seeded []string
	for _, name := range Builtins() {
		written, err := SeedBuiltin(baseDir, name)
		if err != nil {
			return seeded, err
		}
		if !written {
			fmt.Fprintf(w, "  Skipped %s (already exists)\n", name)
			continue
		}
		fmt.Fprintf(w, "  Created %s\n", filepath.Join(baseDir, name))
		seeded = append(seeded, name)
	}
	return seeded, nil
}

// extract copies the embedded tree at root to the filesystem at dst.
func extract(root, dst string) error {
	return fs.WalkDir(builtinFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		target := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, dirPerm)
		}

		data, err := fs.ReadFile(builtinFS, p)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", p, err)
		}

		mode := filePerm
		if strings.HasSuffix(d.Name(), ".sh") {
			mode = execPerm
		}
		return platform.WriteFile(target, data, mode)
	})
}
