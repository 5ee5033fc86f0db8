package stackfsm

import "github.com/enetx/g"

// NewStack returns an empty stack.
func NewStack[S any]() *Stack[S] {
	return &Stack[S]{states: g.NewSlice[S]()}
}

// NewStackWith returns a stack holding exactly initial.
// No callback is fired; use Start to seed a stack with OnStart.
func NewStackWith[S any](initial S) *Stack[S] {
	return &Stack[S]{states: g.Slice[S]{initial}}
}

// Empty reports whether the stack holds no state.
func (s *Stack[S]) Empty() bool { return len(s.states) == 0 }

// Len returns the number of states on the stack.
func (s *Stack[S]) Len() int { return len(s.states) }

// Last returns the top state, or None if the stack is empty.
func (s *Stack[S]) Last() g.Option[S] {
	if s.Empty() {
		return g.None[S]()
	}

	return g.Some(s.states[len(s.states)-1])
}

// LastMut returns a pointer to the top state, or None if the stack is empty.
// The pointer is only valid until the next Push or Pop.
func (s *Stack[S]) LastMut() g.Option[*S] {
	if s.Empty() {
		return g.None[*S]()
	}

	return g.Some(&s.states[len(s.states)-1])
}

// Push places state on top of the stack.
func (s *Stack[S]) Push(state S) { s.states = append(s.states, state) }

// Pop removes and returns the top state, or None if the stack is empty.
func (s *Stack[S]) Pop() g.Option[S] {
	n := len(s.states)
	if n == 0 {
		return g.None[S]()
	}

	top := s.states[n-1]

	var zero S
	s.states[n-1] = zero
	s.states = s.states[:n-1]

	return g.Some(top)
}

// States returns a copy of the stack, bottom first.
func (s *Stack[S]) States() g.Slice[S] {
	return s.states.Clone()
}
