// Package wheel implements a hashed timing wheel that releases scheduled
// events at tick granularity. It is driven by the same loop that updates the
// state machines, one Tick per loop iteration.
package wheel

import (
	"fmt"

	"github.com/enetx/g"
)

// ErrDelayOutOfRange is returned by Schedule for a delay the wheel cannot hold.
type ErrDelayOutOfRange struct {
	Delay int
	Max   int
}

func (e *ErrDelayOutOfRange) Error() string {
	return fmt.Sprintf("wheel: delay %d out of range [0, %d)", e.Delay, e.Max)
}

// Timer is a timing wheel of fixed size. It is not safe for concurrent use.
type Timer[E any] struct {
	slots g.Slice[g.Slice[E]]
	pos   int
}

// New returns a Timer that accepts delays in [0, maxInterval).
func New[E any](maxInterval int) *Timer[E] {
	if maxInterval < 1 {
		maxInterval = 1
	}

	return &Timer[E]{slots: make(g.Slice[g.Slice[E]], maxInterval)}
}

// Schedule queues e to be returned by the Tick call that comes delay ticks
// after the next one. A delay of 0 fires on the next Tick.
func (t *Timer[E]) Schedule(delay int, e E) error {
	if delay < 0 || delay >= len(t.slots) {
		return &ErrDelayOutOfRange{Delay: delay, Max: len(t.slots)}
	}

	slot := (t.pos + delay) % len(t.slots)
	t.slots[slot].Push(e)

	return nil
}

// Tick advances the wheel by one slot and returns the events due now,
// in scheduling order.
func (t *Timer[E]) Tick() g.Slice[E] {
	due := t.slots[t.pos]
	t.slots[t.pos] = nil
	t.pos = (t.pos + 1) % len(t.slots)

	return due
}

// Pending returns the number of scheduled events not yet released.
func (t *Timer[E]) Pending() int {
	n := 0
	for _, slot := range t.slots {
		n += len(slot)
	}

	return n
}
