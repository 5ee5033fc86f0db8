package status_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enetx/stackfsm"
	"github.com/enetx/stackfsm/internal/status"
)

type inbox struct {
	Unread int `json:"unread"`
}

func TestHandler_Agents(t *testing.T) {
	stack := stackfsm.NewStack[string]()
	stack.Push("menu")
	stack.Push("dialog")

	m := stackfsm.FromStack[string, inbox](stackfsm.Base[string, inbox]{}, stack, &inbox{Unread: 3})
	idle := stackfsm.New[string, inbox](stackfsm.Base[string, inbox]{}, &inbox{})

	h := status.NewHandler(prometheus.NewRegistry(),
		status.FromMachine("ui", m.Sync()),
		status.FromMachine("idle", idle.Sync()),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []struct {
		Name    string   `json:"name"`
		Running bool     `json:"running"`
		State   string   `json:"state"`
		Stack   []string `json:"stack"`
		Context inbox    `json:"context"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "ui", got[0].Name)
	assert.True(t, got[0].Running)
	assert.Equal(t, "dialog", got[0].State)
	assert.Equal(t, []string{"menu", "dialog"}, got[0].Stack)
	assert.Equal(t, 3, got[0].Context.Unread)

	assert.False(t, got[1].Running)
	assert.Empty(t, got[1].State)
	assert.Empty(t, got[1].Stack)
}

func TestHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_ticks_total", Help: "ticks"})
	reg.MustRegister(c)
	c.Add(2)

	rec := httptest.NewRecorder()
	status.NewHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_ticks_total 2"))
}

// blinker pushes "overlay" over "base" and pops it again on alternate ticks.
var blinker = stackfsm.Funcs[string, inbox]{
	Tick: func(state string, ib *inbox) stackfsm.Transition[string] {
		ib.Unread++
		if state == "base" {
			return stackfsm.PushState("overlay")
		}
		return stackfsm.PopState[string]()
	},
}

func TestFromMachine_ConsistentWhileUpdating(t *testing.T) {
	sm := stackfsm.FromStack(stackfsm.Handler[string, inbox](blinker), stackfsm.NewStackWith("base"), &inbox{}).Sync()
	src := status.FromMachine("blinker", sm)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				sm.Update()
			}
		}
	}()

	for range 5000 {
		a := src()
		require.True(t, a.Running)
		require.NotEmpty(t, a.Stack)
		require.Equal(t, a.Stack[len(a.Stack)-1], a.State)

		// Unread counts ticks: odd means "overlay" was pushed.
		ib := a.Context.(inbox)
		if ib.Unread%2 == 1 {
			require.Equal(t, []string{"base", "overlay"}, a.Stack)
		} else {
			require.Equal(t, []string{"base"}, a.Stack)
		}
	}

	close(done)
	wg.Wait()
}
