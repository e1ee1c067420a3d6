package agent

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a run uses its full iteration budget
// without producing a final answer.
var ErrExhausted = errors.New("iteration budget exhausted without a final answer")

// InvocationError reports that an invoked capability itself failed.
type InvocationError struct {
	Capability string
	Err        error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("capability %s invocation failed: %v", e.Capability, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
