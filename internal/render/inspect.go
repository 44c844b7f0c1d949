package render

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TemplatedFile describes one file the Renderer would render.
type TemplatedFile struct {
	Path      string   // source path relative to the template root, slash-separated
	Variables []string // Context names the file refers to
	Err       error    // parse error, if any
}

// Inspection summarizes a template directory without rendering it.
type Inspection struct {
	Static    int
	Templated []TemplatedFile
}

// Variables returns the union of names referenced by all templated files in
// order of first use.
func (in *Inspection) Variables() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range in.Templated {
		for _, v := range f.Variables {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Inspect walks templateDir the same way Render does and reports which files
// are templated and what variables they use. Parse errors are recorded per
// file rather than returned.
func (r *Renderer) Inspect(templateDir string) (*Inspection, error) {
	in := &Inspection{}

	err := filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if !r.isTemplated(d.Name()) {
			in.Static++
			return nil
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", rel, err)
		}

		vars, parseErr := Variables(rel, string(text))
		in.Templated = append(in.Templated, TemplatedFile{
			Path:      rel,
			Variables: vars,
			Err:       parseErr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

// OutputName returns the destination name for a templated source path.
func (r *Renderer) OutputName(rel string) string {
	if r.isTemplated(filepath.Base(rel)) {
		return strings.TrimSuffix(rel, r.suffix)
	}
	return rel
}
