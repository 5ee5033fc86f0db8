package stackfsm

// Event names a handler callback.
type Event uint8

const (
	EventStart Event = iota
	EventStop
	EventPause
	EventResume
	EventUpdate
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Observer is notified after a handler callback returns.
// t is the transition returned by Update and None for the other events.
type Observer[S any] func(ev Event, state S, t Transition[S])

type observed[S, D any] struct {
	next      Handler[S, D]
	observers []Observer[S]
}

// Observe wraps h so that every callback is reported to the observers, in order.
// The wrapped handler behaves exactly like h.
func Observe[S, D any](h Handler[S, D], observers ...Observer[S]) Handler[S, D] {
	if len(observers) == 0 {
		return h
	}

	return &observed[S, D]{next: h, observers: observers}
}

func (o *observed[S, D]) emit(ev Event, state S, t Transition[S]) {
	for _, obs := range o.observers {
		obs(ev, state, t)
	}
}

func (o *observed[S, D]) OnStart(state S, ctx *D) {
	o.next.OnStart(state, ctx)
	o.emit(EventStart, state, Stay[S]())
}

func (o *observed[S, D]) OnStop(state S, ctx *D) {
	o.next.OnStop(state, ctx)
	o.emit(EventStop, state, Stay[S]())
}

func (o *observed[S, D]) OnPause(state S, ctx *D) {
	o.next.OnPause(state, ctx)
	o.emit(EventPause, state, Stay[S]())
}

func (o *observed[S, D]) OnResume(state S, ctx *D) {
	o.next.OnResume(state, ctx)
	o.emit(EventResume, state, Stay[S]())
}

func (o *observed[S, D]) Update(state S, ctx *D) Transition[S] {
	t := o.next.Update(state, ctx)
	o.emit(EventUpdate, state, t)

	return t
}
