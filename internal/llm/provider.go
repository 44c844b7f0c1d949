package llm

import (
	"context"
	"errors"
	"fmt"
)

// TextGenerator produces text for a prompt. Implementations make one
// synchronous request and do not retry.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrRemoteGeneration matches every failure returned by a remote generator:
// transport, HTTP status, and response decoding errors.
var ErrRemoteGeneration = errors.New("remote text generation failed")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chat completion returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat completion returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrRemoteGeneration
}

// remoteErr wraps err so it matches ErrRemoteGeneration.
func remoteErr(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrRemoteGeneration, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrRemoteGeneration, msg, err)
}
