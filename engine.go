package stackfsm

// IsRunning reports whether the stack still holds a state.
// A driver should stop calling Update once it returns false.
func IsRunning[S any](stack *Stack[S]) bool { return !stack.Empty() }

// Update asks the handler for the transition of the top state and applies it.
// It does nothing on an empty stack. Panics raised by the handler are not recovered.
func Update[S, D any](h Handler[S, D], stack *Stack[S], ctx *D) Transition[S] {
	top := stack.Last()
	if top.IsNone() {
		return Stay[S]()
	}

	t := h.Update(top.Some(), ctx)
	Apply(h, t, stack, ctx)

	return t
}

// Apply performs t on the stack and fires the lifecycle callbacks of the
// affected states in order.
func Apply[S, D any](h Handler[S, D], t Transition[S], stack *Stack[S], ctx *D) {
	switch t.Kind {
	case None:
	case Pop:
		pop(h, stack, ctx)
	case Push:
		Start(h, t.State, stack, ctx)
	case Switch:
		switchTo(h, t.State, stack, ctx)
	case Quit:
		Stop(h, stack, ctx)
	}
}

// Start pauses the current top, if any, pushes state and starts it.
func Start[S, D any](h Handler[S, D], state S, stack *Stack[S], ctx *D) {
	if top := stack.Last(); top.IsSome() {
		h.OnPause(top.Some(), ctx)
	}

	stack.Push(state)
	h.OnStart(state, ctx)
}

// Stop stops every state on the stack, top to bottom, leaving it empty.
func Stop[S, D any](h Handler[S, D], stack *Stack[S], ctx *D) {
	for top := stack.Pop(); top.IsSome(); top = stack.Pop() {
		h.OnStop(top.Some(), ctx)
	}
}

func pop[S, D any](h Handler[S, D], stack *Stack[S], ctx *D) {
	popped := stack.Pop()
	if popped.IsNone() {
		return
	}

	h.OnStop(popped.Some(), ctx)

	if top := stack.Last(); top.IsSome() {
		h.OnResume(top.Some(), ctx)
	}
}

func switchTo[S, D any](h Handler[S, D], state S, stack *Stack[S], ctx *D) {
	if popped := stack.Pop(); popped.IsSome() {
		h.OnStop(popped.Some(), ctx)
	}

	stack.Push(state)
	h.OnStart(state, ctx)
}
