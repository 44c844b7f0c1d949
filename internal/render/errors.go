package render

import (
	"errors"
	"fmt"
)

// ErrUndefinedVariable matches any *UndefinedVariableError via errors.Is.
var ErrUndefinedVariable = errors.New("undefined variable")

// UndefinedVariableError reports a template reference to a variable that is
// not present in the Context.
type UndefinedVariableError struct {
	File string // template file, relative to the template root
	Name string // variable name as written in the template
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q in %s", e.Name, e.File)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// ErrOutputCollision matches any *OutputCollisionError via errors.Is.
var ErrOutputCollision = errors.New("output collision")

// OutputCollisionError reports two template entries that map to the same
// output path, such as README.md next to README.md.tmpl.
type OutputCollisionError struct {
	Output string // output path, relative to the destination
	First  string // source path that claimed Output first
	Second string // source path that collided with it
}

func (e *OutputCollisionError) Error() string {
	return fmt.Sprintf("%s and %s both produce %s", e.First, e.Second, e.Output)
}

func (e *OutputCollisionError) Unwrap() error {
	return ErrOutputCollision
}
