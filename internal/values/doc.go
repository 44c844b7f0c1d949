// Package values collects user-supplied render variables. Values arrive as
// repeated key=value flags or as a YAML file; the file is checked against an
// embedded JSON Schema that allows only flat string, number, and boolean
// entries keyed by identifiers.
package values
