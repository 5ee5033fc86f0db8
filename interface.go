package stackfsm

import "github.com/enetx/g"

// StateMachine is the behavior shared by Machine and SyncMachine.
type StateMachine[S any] interface {
	Start(S) error
	Update() Transition[S]
	Stop()
	Running() bool
	Current() g.Option[S]
	Depth() int
	States() g.Slice[S]
	ToDOT() g.String
}

// Interface compliance checks.
var (
	_ StateMachine[int] = (*Machine[int, struct{}])(nil)
	_ StateMachine[int] = (*SyncMachine[int, struct{}])(nil)
)
