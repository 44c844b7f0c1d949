// Package render turns a template directory into a project tree. Files whose
// names end in the template suffix (".tmpl" by default) are executed as Go
// text templates against a Context and written without the suffix; every other
// file is copied byte-for-byte with its permission bits. Directory structure is
// mirrored exactly.
//
// Placeholders may be written as {{project_name}}, {{ project_name }} or
// {{ .project_name }}. A reference to a variable missing from the Context fails
// the render with an *UndefinedVariableError before any file is written.
package render
