// Package runner drives state machines at a fixed cadence.
//
// The engine itself never blocks or keeps time; the Runner owns the loop,
// the pacing and the policy for agents whose handlers panic.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/enetx/g"
	"golang.org/x/sync/errgroup"

	"github.com/enetx/stackfsm"
	"github.com/enetx/stackfsm/internal/logging"
	"github.com/enetx/stackfsm/wheel"
)

// Agent is anything the runner can tick. Names must be unique within a run.
type Agent interface {
	Name() string
	Running() bool
	Update()
}

type machineAgent[S any] struct {
	name string
	m    stackfsm.StateMachine[S]
}

func (a machineAgent[S]) Name() string  { return a.name }
func (a machineAgent[S]) Running() bool { return a.m.Running() }
func (a machineAgent[S]) Update()       { a.m.Update() }

// Named adapts a state machine to Agent.
func Named[S any](name string, m stackfsm.StateMachine[S]) Agent {
	return machineAgent[S]{name: name, m: m}
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterval sets the pause between ticks. Zero runs ticks back to back.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) { r.interval = max(d, 0) }
}

// WithMaxTicks stops the loop after n ticks. Zero means no limit.
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) { r.maxTicks = n }
}

// WithParallel updates the agents of a tick concurrently.
// Agents must not share a stack or a context.
func WithParallel(parallel bool) Option {
	return func(r *Runner) { r.parallel = parallel }
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithTickHook registers fn to run at the end of every tick.
func WithTickHook(fn func(tick uint64)) Option {
	return func(r *Runner) { r.hooks.Push(fn) }
}

// WithTimer advances t once per tick, after the agents, and passes each due event to fire.
func WithTimer[E any](t *wheel.Timer[E], fire func(tick uint64, e E)) Option {
	return WithTickHook(func(tick uint64) {
		for e := range t.Tick().Iter() {
			fire(tick, e)
		}
	})
}

// Runner is the driver loop.
type Runner struct {
	interval time.Duration
	maxTicks uint64
	parallel bool
	log      *slog.Logger
	hooks    g.Slice[func(uint64)]
}

// New returns a Runner with no pause between ticks and no tick limit.
func New(opts ...Option) *Runner {
	r := &Runner{log: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run ticks the agents until every one of them stopped, the tick limit is
// reached or ctx is done. It returns the joined panics of retired agents,
// joined with ctx.Err() when the context ended the run.
func (r *Runner) Run(ctx context.Context, agents ...Agent) error {
	var ticker *time.Ticker
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
	}

	active := g.Slice[Agent](agents).Clone()
	var failures []error

	for tick := uint64(1); ; tick++ {
		active = active.Iter().Exclude(stopped).Collect()

		if active.Empty() {
			r.log.Info("all agents stopped", slog.Uint64("tick", tick-1))
			break
		}

		if r.maxTicks > 0 && tick > r.maxTicks {
			r.log.Info("tick limit reached", slog.Uint64("ticks", r.maxTicks))
			break
		}

		for _, err := range r.step(tick, active) {
			r.log.Error("agent retired", slog.String("agent", err.Agent), slog.Any("error", err))
			failures = append(failures, err)
			active = active.Iter().Exclude(func(a Agent) bool { return a.Name() == err.Agent }).Collect()
		}

		for _, hook := range r.hooks {
			hook(tick)
		}

		if err := ctx.Err(); err != nil {
			return joinErrors(err, failures)
		}

		if ticker == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return joinErrors(ctx.Err(), failures)
		case <-ticker.C:
		}
	}

	return joinErrors(nil, failures)
}

func (r *Runner) step(tick uint64, agents g.Slice[Agent]) []*ErrAgentPanic {
	results := make([]*ErrAgentPanic, len(agents))

	if r.parallel {
		// Wait reports the first failure only; each agent's outcome is kept in results.
		var eg errgroup.Group
		for i, a := range agents {
			eg.Go(func() error {
				if err := update(tick, a); err != nil {
					results[i] = err
					return err
				}

				return nil
			})
		}

		if eg.Wait() == nil {
			return nil
		}
	} else {
		for i, a := range agents {
			results[i] = update(tick, a)
		}
	}

	var failed []*ErrAgentPanic
	for _, err := range results {
		if err != nil {
			failed = append(failed, err)
		}
	}

	return failed
}

func stopped(a Agent) bool { return !a.Running() }

func update(tick uint64, a Agent) (err *ErrAgentPanic) {
	defer func() {
		if v := recover(); v != nil {
			err = &ErrAgentPanic{Agent: a.Name(), Tick: tick, Value: v}
		}
	}()

	a.Update()

	return nil
}
