package render

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix marks files that are rendered rather than copied.
const DefaultSuffix = ".tmpl"

// Result holds the outcome of a render pass.
type Result struct {
	OutputDir string
	Files     []string // output paths relative to OutputDir, slash-separated, in walk order
}

// Renderer walks template directories and writes rendered project trees.
type Renderer struct {
	engine   Engine
	suffix   string
	progress io.Writer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine replaces the default text/template engine.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		r.engine = e
	}
}

// WithSuffix sets the filename suffix that marks templated files.
func WithSuffix(suffix string) Option {
	return func(r *Renderer) {
		if suffix != "" {
			r.suffix = suffix
		}
	}
}

// WithProgress prints each generated path to w.
func WithProgress(w io.Writer) Option {
	return func(r *Renderer) {
		r.progress = w
	}
}

// New creates a Renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		engine: NewTextEngine(),
		suffix: DefaultSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Suffix returns the templated-file suffix in use.
func (r *Renderer) Suffix() string {
	return r.suffix
}

// entryKind classifies one planned write.
type entryKind int

const (
	kindDir entryKind = iota
	kindStatic
	kindRendered
)

// entry is one planned output.
type entry struct {
	kind entryKind
	rel  string      // output path relative to the destination, slash-separated
	src  string      // source path (static files)
	data []byte      // rendered content (templated files)
	mode os.FileMode // source permission bits (files)
}

// Render mirrors templateDir into destinationDir. Every templated file is
// rendered in memory before anything is written, so an undefined variable or
// template syntax error leaves the destination untouched. Filesystem errors
// while writing are returned as-is and may leave earlier files in place.
// Colliding destination files are overwritten.
func (r *Renderer) Render(templateDir, destinationDir string, ctx Context) (*Result, error) {
	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %s is not a directory", templateDir)
	}

	entries, err := r.plan(templateDir, ctx.Clone())
	if err != nil {
		return nil, err
	}

	return r.commit(entries, destinationDir)
}

// plan walks the source tree in lexical order and renders templated files.
// Two sources mapping to one output path fail the plan.
func (r *Renderer) plan(templateDir string, data Context) ([]entry, error) {
	var entries []entry
	claimed := make(map[string]string)
	claim := func(out, src string) error {
		if first, ok := claimed[out]; ok {
			return &OutputCollisionError{Output: out, First: first, Second: src}
		}
		claimed[out] = src
		return nil
	}

	err := filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if err := claim(rel, rel); err != nil {
				return err
			}
			entries = append(entries, entry{kind: kindDir, rel: rel})
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		// Symlinked directories are not descended; other special files are skipped.
		if !info.Mode().IsRegular() {
			return nil
		}

		if !r.isTemplated(d.Name()) {
			if err := claim(rel, rel); err != nil {
				return err
			}
			entries = append(entries, entry{kind: kindStatic, rel: rel, src: path, mode: info.Mode()})
			return nil
		}

		outRel := strings.TrimSuffix(rel, r.suffix)
		if err := claim(outRel, rel); err != nil {
			return err
		}

		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", rel, err)
		}

		out, err := r.engine.RenderText(rel, string(text), data)
		if err != nil {
			return err
		}

		entries = append(entries, entry{
			kind: kindRendered,
			rel:  outRel,
			data: []byte(out),
			mode: info.Mode(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// commit writes planned entries under destinationDir.
func (r *Renderer) commit(entries []entry, destinationDir string) (*Result, error) {
	result := &Result{OutputDir: destinationDir}

	for _, e := range entries {
		dst := filepath.Join(destinationDir, filepath.FromSlash(e.rel))

		switch e.kind {
		case kindDir:
			if err := os.MkdirAll(dst, dirPerm); err != nil {
				return result, fmt.Errorf("creating directory %s: %w", dst, err)
			}
			continue
		case kindStatic:
			if err := copyFile(e.src, dst); err != nil {
				return result, fmt.Errorf("copying %s to %s: %w", e.src, dst, err)
			}
		case kindRendered:
			if err := writeFile(dst, e.data, e.mode); err != nil {
				return result, fmt.Errorf("writing %s: %w", dst, err)
			}
		}

		result.Files = append(result.Files, e.rel)
		if r.progress != nil {
			fmt.Fprintf(r.progress, "  Generated: %s\n", dst)
		}
	}

	return result, nil
}

// isTemplated reports whether a file name carries the template suffix. A file
// named exactly the suffix is treated as static.
func (r *Renderer) isTemplated(name string) bool {
	return len(name) > len(r.suffix) && strings.HasSuffix(name, r.suffix)
}
