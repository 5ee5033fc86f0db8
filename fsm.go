// Package stackfsm provides a generic stack-based finite state machine
// (a pushdown automaton) for driving agent behavior.
//
// A Stack holds state values, the last one being active. A Handler evaluates
// any state value: Update returns a Transition, and the engine applies it to the
// stack while firing OnStart, OnStop, OnPause and OnResume on the affected
// states in a fixed order. Switch replaces the active state; Push and Pop
// suspend and resume it. Quit unwinds the whole stack.
//
// The engine functions (Update, Apply, Start, Stop, IsRunning) keep no state of
// their own. Machine bundles a handler, a stack and a context for callers that
// prefer an object.
package stackfsm

import "github.com/enetx/g"

// New creates a Machine with an empty stack. Call Start to seed it.
func New[S, D any](h Handler[S, D], ctx *D) *Machine[S, D] {
	return &Machine[S, D]{
		handler: h,
		stack:   NewStack[S](),
		ctx:     ctx,
		hooks:   g.NewSlice[Hook[S]](),
	}
}

// FromStack creates a Machine over an existing stack. No callback is fired,
// so a stack built with NewStackWith starts without OnStart.
func FromStack[S, D any](h Handler[S, D], stack *Stack[S], ctx *D) *Machine[S, D] {
	m := New(h, ctx)
	m.stack = stack
	m.started = !stack.Empty()

	return m
}

// OnTransition registers a hook called after every non-None transition.
func (m *Machine[S, D]) OnTransition(hook Hook[S]) *Machine[S, D] {
	m.hooks.Push(hook)
	return m
}

// Start pushes the initial state and fires its OnStart.
// A machine is started once; a stopped machine cannot be restarted in place.
func (m *Machine[S, D]) Start(initial S) error {
	if m.started {
		if m.stack.Empty() {
			return ErrStopped
		}

		return ErrRunning
	}

	m.started = true
	Start(m.handler, initial, m.stack, m.ctx)

	return nil
}

// Update runs one tick of the active state and returns the applied transition.
// It is a no-op on a machine that is not running.
func (m *Machine[S, D]) Update() Transition[S] {
	top := m.stack.Last()
	if top.IsNone() {
		return Stay[S]()
	}

	t := Update(m.handler, m.stack, m.ctx)
	if !t.IsNone() {
		m.notify(top.Some(), t)
	}

	return t
}

// Stop unwinds the stack, firing OnStop on every state top to bottom.
func (m *Machine[S, D]) Stop() {
	top := m.stack.Last()
	if top.IsNone() {
		return
	}

	m.started = true
	Stop(m.handler, m.stack, m.ctx)
	m.notify(top.Some(), QuitMachine[S]())
}

func (m *Machine[S, D]) notify(from S, t Transition[S]) {
	depth := m.stack.Len()
	for hook := range m.hooks.Iter() {
		hook(from, t, depth)
	}
}

// Running reports whether the machine still has an active state.
func (m *Machine[S, D]) Running() bool { return IsRunning(m.stack) }

// Current returns the active state, or None once the machine has stopped.
func (m *Machine[S, D]) Current() g.Option[S] { return m.stack.Last() }

// Depth returns the number of states on the stack.
func (m *Machine[S, D]) Depth() int { return m.stack.Len() }

// States returns a copy of the stack, bottom first.
func (m *Machine[S, D]) States() g.Slice[S] { return m.stack.States() }

// Context returns the context passed to every callback.
func (m *Machine[S, D]) Context() *D { return m.ctx }

// Handler returns the machine's handler.
func (m *Machine[S, D]) Handler() Handler[S, D] { return m.handler }

// ToDOT renders the machine's stack in the DOT language.
func (m *Machine[S, D]) ToDOT() g.String { return m.stack.ToDOT() }

// Sync wraps the machine for use from multiple goroutines.
func (m *Machine[S, D]) Sync() *SyncMachine[S, D] { return &SyncMachine[S, D]{m: m} }
