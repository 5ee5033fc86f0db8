package stackfsm

import (
	"sync"

	"github.com/enetx/g"
)

type (
	// TransitionKind identifies what a Transition does to the stack.
	TransitionKind uint8

	// Transition is the instruction returned by Handler.Update. It is applied
	// to the stack in the same tick it was produced and never stored.
	// The zero value is a None transition.
	Transition[S any] struct {
		Kind  TransitionKind
		State S // target of Push and Switch, ignored otherwise
	}

	// Handler evaluates state values. A single handler usually serves every
	// state of a machine and branches on the state value.
	//
	// Callbacks receive the state and a pointer to the caller's context. They may
	// mutate the context freely, but only the value returned from Update changes
	// the stack.
	Handler[S, D any] interface {
		// OnStart is called once when the state becomes active through Push or Switch.
		OnStart(state S, ctx *D)
		// OnStop is called once when the state is removed from the stack for good.
		OnStop(state S, ctx *D)
		// OnPause is called on the top state when another state is pushed over it.
		OnPause(state S, ctx *D)
		// OnResume is called on the state uncovered by a Pop.
		OnResume(state S, ctx *D)
		// Update runs once per tick for the state on top of the stack.
		Update(state S, ctx *D) Transition[S]
	}

	// Stack is a LIFO of state values. The last element is the active state.
	// A Stack fires no callbacks; that is the engine's job.
	Stack[S any] struct {
		states g.Slice[S]
	}

	// Hook is notified after the engine applied a non-None transition.
	// from is the state that requested it.
	Hook[S any] func(from S, t Transition[S], depth int)

	// Machine owns one handler, one stack and one context pointer.
	// It is not safe for concurrent use; see SyncMachine.
	Machine[S, D any] struct {
		handler Handler[S, D]
		stack   *Stack[S]
		ctx     *D
		hooks   g.Slice[Hook[S]]
		started bool
	}

	// SyncMachine is a thread-safe wrapper around a Machine.
	// All methods on SyncMachine are the locked counterparts of the Machine methods.
	SyncMachine[S, D any] struct {
		m  *Machine[S, D]
		mu sync.RWMutex
	}
)

const (
	// None keeps the current state.
	None TransitionKind = iota
	// Pop ends the current state and resumes the one below it.
	Pop
	// Push pauses the current state and starts a new one on top.
	Push
	// Switch stops the current state and starts a new one in its place.
	Switch
	// Quit stops every state on the stack, top to bottom.
	Quit
)

func (k TransitionKind) String() string {
	switch k {
	case None:
		return "none"
	case Pop:
		return "pop"
	case Push:
		return "push"
	case Switch:
		return "switch"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Stay returns a None transition.
func Stay[S any]() Transition[S] { return Transition[S]{} }

// PopState returns a Pop transition.
func PopState[S any]() Transition[S] { return Transition[S]{Kind: Pop} }

// PushState returns a transition that pushes s over the current state.
func PushState[S any](s S) Transition[S] { return Transition[S]{Kind: Push, State: s} }

// SwitchState returns a transition that replaces the current state with s.
func SwitchState[S any](s S) Transition[S] { return Transition[S]{Kind: Switch, State: s} }

// QuitMachine returns a Quit transition.
func QuitMachine[S any]() Transition[S] { return Transition[S]{Kind: Quit} }

// IsNone reports whether t leaves the stack untouched.
func (t Transition[S]) IsNone() bool { return t.Kind == None }

func (t Transition[S]) String() string {
	switch t.Kind {
	case Push, Switch:
		return string(g.Format("{}({})", t.Kind, t.State))
	default:
		return t.Kind.String()
	}
}
