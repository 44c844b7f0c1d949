package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/appgen-labs/appgen/internal/llm"
	"github.com/appgen-labs/appgen/internal/platform"
	"github.com/appgen-labs/appgen/internal/render"
	"github.com/appgen-labs/appgen/internal/templates"
)

// ErrNoProviderConfigured is returned by GenerateReadme when the generator was
// built without a text-generation capability.
var ErrNoProviderConfigured = errors.New("no LLM provider configured")

// Context variable names always supplied to templates.
const (
	VarProjectName = "project_name"
	VarDescription = "description"
	VarYear        = "year"
)

// ReadmeFile is the file GenerateReadme writes inside the project.
const ReadmeFile = "README.md"

// Generator orchestrates project creation.
type Generator struct {
	store    *templates.Store
	renderer *render.Renderer
	text     llm.TextGenerator
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTextGenerator supplies the capability used by GenerateReadme.
func WithTextGenerator(tg llm.TextGenerator) Option {
	return func(g *Generator) {
		g.text = tg
	}
}

// WithClock overrides the time source used for the year variable.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator reading templates from store and writing with renderer.
func New(store *templates.Store, renderer *render.Renderer, opts ...Option) *Generator {
	g := &Generator{
		store:    store,
		renderer: renderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasTextGenerator reports whether README generation is available.
func (g *Generator) HasTextGenerator() bool {
	return g.text != nil
}

// Result describes a created project.
type Result struct {
	ProjectPath string
	Files       []string
}

// Create renders templateName into destinationRoot/projectName. extra holds
// additional variables; project_name, description, and year take precedence
// over entries of the same name.
func (g *Generator) Create(projectName, templateName, destinationRoot, description string, extra render.Context) (*Result, error) {
	tmpl, err := g.store.Resolve(templateName)
	if err != nil {
		return nil, err
	}

	projectPath := filepath.Join(destinationRoot, projectName)
	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory %s: %w", projectPath, err)
	}

	data := g.buildContext(projectName, description, extra)

	res, err := g.renderer.Render(tmpl.Dir, projectPath, data)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", tmpl.Name, err)
	}

	return &Result{ProjectPath: projectPath, Files: res.Files}, nil
}

func (g *Generator) buildContext(projectName, description string, extra render.Context) render.Context {
	data := make(render.Context, len(extra)+3)
	for k, v := range extra {
		data[k] = v
	}
	data[VarProjectName] = projectName
	data[VarDescription] = description
	data[VarYear] = g.now().UTC().Year()
	return data
}

// GenerateReadme asks the text generator for a README and writes the returned
// text to projectPath/README.md unchanged, replacing any existing file.
func (g *Generator) GenerateReadme(ctx context.Context, projectPath, projectName, description string) error {
	if g.text == nil {
		return ErrNoProviderConfigured
	}

	readme, err := g.text.GenerateText(ctx, BuildReadmePrompt(projectName, description))
	if err != nil {
		return fmt.Errorf("generating README: %w", err)
	}

	path := filepath.Join(projectPath, ReadmeFile)
	if err := platform.WriteFile(path, []byte(readme), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
