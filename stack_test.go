package stackfsm_test

import (
	"testing"

	. "github.com/enetx/stackfsm"
)

func TestStack_Basic(t *testing.T) {
	s := NewStack[int]()

	assertTrue(t, s.Empty())
	assertTrue(t, s.Last().IsNone())
	assertTrue(t, s.LastMut().IsNone())
	assertTrue(t, s.Pop().IsNone())

	s.Push(1)
	s.Push(2)

	assertFalse(t, s.Empty())
	assertEqual(t, s.Len(), 2)
	assertEqual(t, s.Last().Unwrap(), 2)

	assertEqual(t, s.Pop().Unwrap(), 2)
	assertEqual(t, s.Pop().Unwrap(), 1)
	assertTrue(t, s.Pop().IsNone())
	assertTrue(t, s.Empty())
}

func TestStack_NewStackWith(t *testing.T) {
	s := NewStackWith("idle")

	assertEqual(t, s.Len(), 1)
	assertEqual(t, s.Last().Unwrap(), "idle")
}

func TestStack_LastMut(t *testing.T) {
	s := NewStackWith(10)

	*s.LastMut().Unwrap() = 11

	assertEqual(t, s.Last().Unwrap(), 11)
	assertEqual(t, s.Len(), 1)
}

func TestStack_StatesIsCopy(t *testing.T) {
	s := NewStack[string]()
	s.Push("a")
	s.Push("b")

	states := s.States()
	states[0] = "z"

	assertEqual(t, len(states), 2)
	assertEqual(t, s.States()[0], "a")
}

func TestStack_ToDOT(t *testing.T) {
	s := NewStack[string]()
	assertTrue(t, s.ToDOT().Contains("(stopped)"))

	s.Push("home")
	s.Push("bathroom")

	dot := s.ToDOT()
	assertTrue(t, dot.Contains(`s1 [label="bathroom", fillcolor="#90ee90", penwidth=2];`))
	assertTrue(t, dot.Contains(`s0 [label="home", fillcolor="#d3d3d3"];`))
	assertTrue(t, dot.Contains("s1 -> s0;"))
}
