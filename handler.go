package stackfsm

import "github.com/enetx/g"

// Interface compliance checks.
var (
	_ Handler[int, struct{}] = Base[int, struct{}]{}
	_ Handler[int, struct{}] = Funcs[int, struct{}]{}
	_ Handler[int, struct{}] = (*Router[int, struct{}])(nil)
)

// Base implements every Handler method as a no-op, with Update returning None.
// Embed it to override only the callbacks a state needs.
type Base[S, D any] struct{}

func (Base[S, D]) OnStart(S, *D) {}
func (Base[S, D]) OnStop(S, *D) {}
func (Base[S, D]) OnPause(S, *D) {}
func (Base[S, D]) OnResume(S, *D) {}
func (Base[S, D]) Update(S, *D) Transition[S] { return Stay[S]() }

type (
	// Callback is a lifecycle function used by Funcs.
	Callback[S, D any] func(state S, ctx *D)
	// UpdateFunc is the per-tick function used by Funcs.
	UpdateFunc[S, D any] func(state S, ctx *D) Transition[S]
)

// Funcs builds a Handler from plain functions. Nil fields behave like Base.
type Funcs[S, D any] struct {
	Start  Callback[S, D]
	Stop   Callback[S, D]
	Pause  Callback[S, D]
	Resume Callback[S, D]
	Tick   UpdateFunc[S, D]
}

func (f Funcs[S, D]) OnStart(state S, ctx *D) {
	if f.Start != nil {
		f.Start(state, ctx)
	}
}

func (f Funcs[S, D]) OnStop(state S, ctx *D) {
	if f.Stop != nil {
		f.Stop(state, ctx)
	}
}

func (f Funcs[S, D]) OnPause(state S, ctx *D) {
	if f.Pause != nil {
		f.Pause(state, ctx)
	}
}

func (f Funcs[S, D]) OnResume(state S, ctx *D) {
	if f.Resume != nil {
		f.Resume(state, ctx)
	}
}

func (f Funcs[S, D]) Update(state S, ctx *D) Transition[S] {
	if f.Tick != nil {
		return f.Tick(state, ctx)
	}

	return Stay[S]()
}

// Router dispatches each callback to the handler registered for the state value.
// States without a registered handler behave like Base.
// Use it when the set of states is open-ended; for a closed set a single
// handler with a switch keeps exhaustiveness visible.
type Router[S comparable, D any] struct {
	routes g.Map[S, Handler[S, D]]
}

// NewRouter returns an empty Router.
func NewRouter[S comparable, D any]() *Router[S, D] {
	return &Router[S, D]{routes: g.NewMap[S, Handler[S, D]]()}
}

// Handle registers h for state, replacing any previous registration.
func (r *Router[S, D]) Handle(state S, h Handler[S, D]) *Router[S, D] {
	r.routes.Set(state, h)
	return r
}

// States returns the state values that have a registered handler.
func (r *Router[S, D]) States() g.Slice[S] {
	return r.routes.Keys()
}

func (r *Router[S, D]) route(state S) Handler[S, D] {
	if h := r.routes.Get(state); h.IsSome() {
		return h.Some()
	}

	return Base[S, D]{}
}

func (r *Router[S, D]) OnStart(state S, ctx *D) { r.route(state).OnStart(state, ctx) }
func (r *Router[S, D]) OnStop(state S, ctx *D) { r.route(state).OnStop(state, ctx) }
func (r *Router[S, D]) OnPause(state S, ctx *D) { r.route(state).OnPause(state, ctx) }
func (r *Router[S, D]) OnResume(state S, ctx *D) { r.route(state).OnResume(state, ctx) }

func (r *Router[S, D]) Update(state S, ctx *D) Transition[S] {
	return r.route(state).Update(state, ctx)
}
