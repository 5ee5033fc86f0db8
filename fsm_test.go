package stackfsm_test

import (
	"testing"

	. "github.com/enetx/stackfsm"
	"github.com/enetx/g"
)

func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Fatalf("expected true, got false")
	}
}

func assertFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		t.Fatalf("expected false, got true")
	}
}

type letter string

// trace is the context of the recording handler; it collects every callback.
type trace struct {
	events g.Slice[g.String]
}

func (tr *trace) add(name string, s letter) { tr.events.Push(g.Format("{}({})", name, s)) }

func (tr *trace) take() g.Slice[g.String] {
	events := tr.events
	tr.events = nil

	return events
}

func assertTrace(t *testing.T, tr *trace, want ...g.String) {
	t.Helper()
	got := tr.take()
	if !got.Eq(g.SliceOf(want...)) {
		t.Fatalf("expected trace %v, got %v", want, got)
	}
}

// recorder answers Update calls from a per-state script and records all callbacks.
type recorder struct {
	script map[letter][]Transition[letter]
}

func newRecorder() *recorder {
	return &recorder{script: make(map[letter][]Transition[letter])}
}

func (r *recorder) then(s letter, ts ...Transition[letter]) *recorder {
	r.script[s] = append(r.script[s], ts...)
	return r
}

func (r *recorder) OnStart(s letter, tr *trace) { tr.add("start", s) }
func (r *recorder) OnStop(s letter, tr *trace) { tr.add("stop", s) }
func (r *recorder) OnPause(s letter, tr *trace) { tr.add("pause", s) }
func (r *recorder) OnResume(s letter, tr *trace) { tr.add("resume", s) }

func (r *recorder) Update(s letter, tr *trace) Transition[letter] {
	tr.add("update", s)

	queue := r.script[s]
	if len(queue) == 0 {
		return Stay[letter]()
	}

	r.script[s] = queue[1:]

	return queue[0]
}

func TestMachine_StartFiresOnStart(t *testing.T) {
	tr := &trace{}
	m := New[letter](newRecorder(), tr)

	assertFalse(t, m.Running())
	assertNoError(t, m.Start("a"))
	assertTrue(t, m.Running())
	assertEqual(t, m.Current().Unwrap(), letter("a"))
	assertTrace(t, tr, "start(a)")
}

func TestMachine_StartTwice(t *testing.T) {
	m := New[letter](newRecorder(), &trace{})

	assertNoError(t, m.Start("a"))
	assertEqual(t, m.Start("b"), ErrRunning)
	assertEqual(t, m.Depth(), 1)
}

func TestMachine_CannotRestartAfterStop(t *testing.T) {
	tr := &trace{}
	m := New[letter](newRecorder().then("a", QuitMachine[letter]()), tr)

	assertNoError(t, m.Start("a"))
	m.Update()
	assertFalse(t, m.Running())
	assertEqual(t, m.Start("a"), ErrStopped)
	assertTrace(t, tr, "start(a)", "update(a)", "stop(a)")
}

func TestMachine_FromStack(t *testing.T) {
	tr := &trace{}
	m := FromStack[letter](newRecorder(), NewStackWith[letter]("a"), tr)

	assertTrue(t, m.Running())
	assertEqual(t, m.Start("b"), ErrRunning)
	assertEqual(t, tr.events.Len(), 0)
}

func TestMachine_OnTransition(t *testing.T) {
	type call struct {
		from  letter
		kind  TransitionKind
		depth int
	}

	var calls []call

	h := newRecorder().
		then("a", Stay[letter](), PushState[letter]("b")).
		then("b", PopState[letter]())

	m := New[letter](h, &trace{}).
		OnTransition(func(from letter, tn Transition[letter], depth int) {
			calls = append(calls, call{from, tn.Kind, depth})
		})

	assertNoError(t, m.Start("a"))
	m.Update()
	m.Update()
	m.Update()

	assertEqual(t, len(calls), 2)
	assertEqual(t, calls[0], call{"a", Push, 2})
	assertEqual(t, calls[1], call{"b", Pop, 1})
}

func TestMachine_Stop(t *testing.T) {
	tr := &trace{}
	stops := 0

	m := New[letter](newRecorder().then("a", PushState[letter]("b")), tr).
		OnTransition(func(_ letter, tn Transition[letter], depth int) {
			if tn.Kind == Quit {
				stops++
				assertEqual(t, depth, 0)
			}
		})

	assertNoError(t, m.Start("a"))
	m.Update()
	tr.take()

	m.Stop()
	assertTrace(t, tr, "stop(b)", "stop(a)")
	assertFalse(t, m.Running())
	assertEqual(t, stops, 1)

	m.Stop()
	assertEqual(t, stops, 1)
}

func TestMachine_UpdateWhenStopped(t *testing.T) {
	tr := &trace{}
	m := New[letter](newRecorder(), tr)

	assertTrue(t, m.Update().IsNone())
	assertEqual(t, tr.events.Len(), 0)
}

func TestMachine_StatesAndContext(t *testing.T) {
	tr := &trace{}
	m := New[letter](newRecorder().then("a", PushState[letter]("b")), tr)

	assertNoError(t, m.Start("a"))
	m.Update()

	assertTrue(t, m.States().Eq(g.SliceOf[letter]("a", "b")))
	assertTrue(t, m.Context() == tr)
}

func TestSyncMachine(t *testing.T) {
	sm := New[letter](newRecorder().then("a", SwitchState[letter]("b")), &trace{}).Sync()

	assertNoError(t, sm.Start("a"))
	assertEqual(t, sm.Update().Kind, Switch)
	assertEqual(t, sm.Current().Unwrap(), letter("b"))
	assertEqual(t, sm.Depth(), 1)

	var n int
	sm.Inspect(func(tr *trace) { n = len(tr.events) })
	assertEqual(t, n, 4)

	sm.Stop()
	assertFalse(t, sm.Running())
}

func TestSyncMachine_Snapshot(t *testing.T) {
	sm := New[letter](newRecorder().then("a", PushState[letter]("b")), &trace{}).Sync()
	assertNoError(t, sm.Start("a"))
	sm.Update()

	var (
		states g.Slice[letter]
		n      int
	)
	sm.Snapshot(func(s g.Slice[letter], tr *trace) {
		states = s
		n = len(tr.events)
	})

	assertTrue(t, states.Eq(g.SliceOf[letter]("a", "b")))
	assertEqual(t, n, 4)
}
