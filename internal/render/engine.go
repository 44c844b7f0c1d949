package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Engine applies a Context to template text.
type Engine interface {
	// RenderText executes text as a template named name and returns the result.
	RenderText(name, text string, data Context) (string, error)
}

// TextEngine is the default Engine, built on text/template with strict
// variable lookup.
type TextEngine struct{}

// NewTextEngine returns the default engine.
func NewTextEngine() *TextEngine {
	return &TextEngine{}
}

// builtinFuncs are the functions text/template predefines.
var builtinFuncs = map[string]bool{
	"and": true, "call": true, "html": true, "index": true, "slice": true,
	"js": true, "len": true, "not": true, "or": true, "print": true,
	"printf": true, "println": true, "urlquery": true,
	"eq": true, "ge": true, "gt": true, "le": true, "lt": true, "ne": true,
}

var titleCaser = cases.Title(language.English)

// helperFuncs are available to every template alongside the Context variables.
var helperFuncs = template.FuncMap{
	"upper":  func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
	"lower":  func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
	"title":  func(v any) string { return titleCaser.String(fmt.Sprint(v)) },
	"snake":  func(v any) string { return strcase.SnakeCase(fmt.Sprint(v)) },
	"kebab":  func(v any) string { return strcase.KebabCase(fmt.Sprint(v)) },
	"camel":  func(v any) string { return strcase.LowerCamelCase(fmt.Sprint(v)) },
	"pascal": func(v any) string { return strcase.UpperCamelCase(fmt.Sprint(v)) },
}

var (
	identPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	missingKeyPattern = regexp.MustCompile(`map has no entry for key "([^"]*)"`)
)

// RenderText implements Engine.
func (e *TextEngine) RenderText(name, text string, data Context) (string, error) {
	if err := checkReferences(name, text, data); err != nil {
		return "", err
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcMap(data)).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		if m := missingKeyPattern.FindStringSubmatch(err.Error()); m != nil {
			return "", &UndefinedVariableError{File: name, Name: m[1]}
		}
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// funcMap exposes each Context variable as a niladic function so that
// {{ project_name }} works without a leading dot. Variables win over helpers
// of the same name.
func funcMap(data Context) template.FuncMap {
	fm := make(template.FuncMap, len(helperFuncs)+len(data))
	for k, fn := range helperFuncs {
		fm[k] = fn
	}
	for k, v := range data {
		if !identPattern.MatchString(k) {
			continue
		}
		fm[k] = func() any { return v }
	}
	return fm
}

// checkReferences parses text without function checking and reports the
// first identifier or top-level field that data does not define.
func checkReferences(name, text string, data Context) error {
	missing, err := references(name, text, data)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &UndefinedVariableError{File: name, Name: missing[0]}
	}
	return nil
}

// Variables returns the Context names text refers to, in order of first use.
// Helper and predefined functions are not included.
func Variables(name, text string) ([]string, error) {
	return references(name, text, nil)
}

// references returns the names text uses that data does not define.
func references(name, text string, data Context) ([]string, error) {
	tree := parse.New(name)
	tree.Mode = parse.SkipFuncCheck
	treeSet := make(map[string]*parse.Tree)
	if _, err := tree.Parse(text, "", "", treeSet); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	w := &refWalker{data: data, seen: make(map[string]bool)}
	w.walk(tree.Root, true)

	defs := make([]string, 0, len(treeSet))
	for defName := range treeSet {
		if defName != name {
			defs = append(defs, defName)
		}
	}
	sort.Strings(defs)
	for _, defName := range defs {
		// The dot inside a defined template depends on its caller.
		w.walk(treeSet[defName].Root, false)
	}

	return w.missing, nil
}

type refWalker struct {
	data    Context
	seen    map[string]bool
	missing []string
}

func (w *refWalker) defined(name string) bool {
	if _, ok := w.data[name]; ok {
		return true
	}
	return builtinFuncs[name] || helperFuncs[name] != nil
}

func (w *refWalker) note(name string) {
	if w.seen[name] {
		return
	}
	w.seen[name] = true
	w.missing = append(w.missing, name)
}

// walk visits node. dotIsRoot is false inside range and with bodies, where
// field references resolve against something other than the Context.
func (w *refWalker) walk(node parse.Node, dotIsRoot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			w.walk(c, dotIsRoot)
		}
	case *parse.ActionNode:
		w.walk(n.Pipe, dotIsRoot)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			w.walk(cmd, dotIsRoot)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			w.walk(arg, dotIsRoot)
		}
	case *parse.ChainNode:
		w.walk(n.Node, dotIsRoot)
	case *parse.IdentifierNode:
		if !w.defined(n.Ident) {
			w.note(n.Ident)
		}
	case *parse.FieldNode:
		if dotIsRoot && len(n.Ident) > 0 {
			if _, ok := w.data[n.Ident[0]]; !ok {
				w.note(n.Ident[0])
			}
		}
	case *parse.VariableNode:
		// $.name always refers to the Context.
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			if _, ok := w.data[n.Ident[1]]; !ok {
				w.note(n.Ident[1])
			}
		}
	case *parse.IfNode:
		w.walk(n.Pipe, dotIsRoot)
		w.walk(n.List, dotIsRoot)
		w.walk(n.ElseList, dotIsRoot)
	case *parse.RangeNode:
		w.walk(n.Pipe, dotIsRoot)
		w.walk(n.List, false)
		w.walk(n.ElseList, dotIsRoot)
	case *parse.WithNode:
		w.walk(n.Pipe, dotIsRoot)
		w.walk(n.List, false)
		w.walk(n.ElseList, dotIsRoot)
	case *parse.TemplateNode:
		w.walk(n.Pipe, dotIsRoot)
	}
}
