// Package metrics exports Prometheus metrics for stackfsm machines.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/enetx/stackfsm"
)

// Collector holds the metric vectors shared by every observed machine.
type Collector struct {
	transitions *prometheus.CounterVec
	callbacks   *prometheus.CounterVec
	depth       *prometheus.GaugeVec
	ticks       prometheus.Counter
}

// New creates the collector's metrics. Nothing is registered until Register.
func New() *Collector {
	return &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackfsm_transitions_total",
				Help: "Number of applied transitions by kind.",
			},
			[]string{"machine", "kind"},
		),
		callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackfsm_callbacks_total",
				Help: "Number of handler callbacks by event and state.",
			},
			[]string{"machine", "event", "state"},
		),
		depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stackfsm_stack_depth",
				Help: "Number of states on the machine's stack.",
			},
			[]string{"machine"},
		),
		ticks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stackfsm_ticks_total",
				Help: "Number of driver loop ticks.",
			},
		),
	}
}

// Register registers every metric of c with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.transitions, c.callbacks, c.depth, c.ticks} {
		if err := reg.Register(col); err != nil {
			return fmt.Errorf("metrics: register: %w", err)
		}
	}

	return nil
}

// Tick counts one driver loop tick.
func (c *Collector) Tick() { c.ticks.Inc() }

// Observer returns an Observer counting the callbacks of the named machine.
func Observer[S any](c *Collector, machine string) stackfsm.Observer[S] {
	return func(ev stackfsm.Event, state S, _ stackfsm.Transition[S]) {
		c.callbacks.WithLabelValues(machine, ev.String(), fmt.Sprint(state)).Inc()
	}
}

// Hook returns a transition Hook counting transitions of the named machine
// and tracking its stack depth.
func Hook[S any](c *Collector, machine string) stackfsm.Hook[S] {
	return func(_ S, t stackfsm.Transition[S], depth int) {
		c.transitions.WithLabelValues(machine, t.Kind.String()).Inc()
		c.depth.WithLabelValues(machine).Set(float64(depth))
	}
}

// Track attaches both the transition hook and the depth gauge to m.
// Callback counting needs the handler to be wrapped with Observer.
func Track[S, D any](c *Collector, machine string, m *stackfsm.Machine[S, D]) {
	c.depth.WithLabelValues(machine).Set(float64(m.Depth()))
	m.OnTransition(Hook[S](c, machine))
}

// TransitionsFor returns the counter of kind transitions applied by machine.
func (c *Collector) TransitionsFor(machine string, kind stackfsm.TransitionKind) prometheus.Counter {
	return c.transitions.WithLabelValues(machine, kind.String())
}

// CallbacksFor returns the counter of ev callbacks fired on state by machine.
func (c *Collector) CallbacksFor(machine string, ev stackfsm.Event, state string) prometheus.Counter {
	return c.callbacks.WithLabelValues(machine, ev.String(), state)
}

// DepthFor returns the stack depth gauge of machine.
func (c *Collector) DepthFor(machine string) prometheus.Gauge {
	return c.depth.WithLabelValues(machine)
}
