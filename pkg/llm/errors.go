package llm

import (
	"errors"
	"fmt"
)

// ErrCompletionTimeout reports a completion call that did not finish
// within its deadline. A timed-out completion ends the run; it is never
// retried.
var ErrCompletionTimeout = errors.New("completion timed out")

// CompletionError wraps any non-timeout failure from the underlying
// completion provider.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed (%s): %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
