package runner

import (
	"errors"
	"fmt"
)

// ErrAgentPanic is reported when an agent's Update panicked. The agent is
// retired and the other agents keep running.
type ErrAgentPanic struct {
	Agent string
	Tick  uint64
	Value any
}

func (e *ErrAgentPanic) Error() string {
	return fmt.Sprintf("runner: agent %q panicked on tick %d: %v", e.Agent, e.Tick, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ErrAgentPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

func joinErrors(first error, rest []error) error {
	if first == nil {
		return errors.Join(rest...)
	}

	return errors.Join(append([]error{first}, rest...)...)
}
