// Package status serves the state of running agents and their metrics over HTTP.
package status

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/enetx/g"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enetx/stackfsm"
)

// Agent is the JSON view of one agent.
type Agent struct {
	Name    string   `json:"name"`
	Running bool     `json:"running"`
	State   string   `json:"state,omitempty"`
	Stack   []string `json:"stack"`
	Context any      `json:"context,omitempty"`
}

// Source produces the current view of an agent.
type Source func() Agent

// FromMachine returns a Source reading sm. The stack and the context are read
// under one lock so that the view is consistent while the agent keeps running.
func FromMachine[S, D any](name string, sm *stackfsm.SyncMachine[S, D]) Source {
	return func() Agent {
		a := Agent{Name: name, Stack: []string{}}

		var snapshot D
		sm.Snapshot(func(states g.Slice[S], ctx *D) {
			for s := range states.Iter() {
				a.Stack = append(a.Stack, fmt.Sprint(s))
			}
			snapshot = *ctx
		})

		if n := len(a.Stack); n > 0 {
			a.Running = true
			a.State = a.Stack[n-1]
		}
		a.Context = snapshot

		return a
	}
}

// NewHandler returns a router serving:
//
//	GET /agents   the JSON view of every source, in order
//	GET /metrics  the metrics gathered by gatherer
func NewHandler(gatherer prometheus.Gatherer, sources ...Source) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/agents", func(w http.ResponseWriter, _ *http.Request) {
		agents := make([]Agent, 0, len(sources))
		for _, src := range sources {
			agents = append(agents, src())
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(agents); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
