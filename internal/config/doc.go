// Package config manages user-level settings stored at ~/.appgen/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the templates directory and the templated-file suffix. Every key can also be
// supplied through an APPGEN_-prefixed environment variable.
package config
