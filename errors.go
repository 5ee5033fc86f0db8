package stackfsm

import "errors"

var (
	// ErrStopped is returned when starting a machine whose stack has already been emptied.
	// A stopped machine cannot be restarted; create a new one.
	ErrStopped = errors.New("stackfsm: machine has stopped")

	// ErrRunning is returned when starting a machine that already has an active state.
	ErrRunning = errors.New("stackfsm: machine is already running")
)
