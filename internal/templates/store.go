package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTemplateNotFound is returned when a name does not resolve to a template directory.
var ErrTemplateNotFound = errors.New("template not found")

// Template is a named template directory.
type Template struct {
	Name string // e.g., "fastapi"
	Dir  string // absolute or caller-relative path to the template root
}

// Store lists and resolves templates under a single base directory.
type Store struct {
	baseDir string
}

// NewStore returns a Store rooted at baseDir. The directory does not need to exist.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the directory the store reads templates from.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// List returns the names of all templates, sorted lexicographically.
// A missing base directory yields an empty list, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates directory %s: %w", s.baseDir, err)
	}

	var names []string
	for _, entry := range entries {
		if s.isTemplateDir(entry) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve returns the template directory for name.
func (s *Store) Resolve(name string) (*Template, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q under %s", ErrTemplateNotFound, name, s.baseDir)
	}

	dir := filepath.Join(s.baseDir, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q under %s", ErrTemplateNotFound, name, s.baseDir)
	}

	return &Template{Name: name, Dir: dir}, nil
}

// isTemplateDir reports whether entry is a directory, following symlinks.
func (s *Store) isTemplateDir(entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.baseDir, entry.Name()))
	return err == nil && info.IsDir()
}

// validName rejects names that would escape the base directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
