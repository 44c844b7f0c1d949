// Package generator creates projects. It resolves a template through the
// template store, builds the render context, renders the template into
// <destination>/<project>, and can ask a text-generation capability for a
// README that replaces the scaffolded one.
package generator
