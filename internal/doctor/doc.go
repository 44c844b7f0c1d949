// Package doctor runs diagnostic checks on an appgen installation: the config
// directory, the templates directory and each template in it, and the LLM
// settings used for README generation. Checks print one status line per item
// and return the number of failures found.
package doctor
