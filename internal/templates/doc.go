// Package templates locates project templates. A template is any immediate
// subdirectory of the base templates directory; its name is the directory
// name. The package also carries a small set of built-in templates that
// "appgen init" writes into the base directory.
package templates
