package stackfsm

import "github.com/enetx/g"

// Start is the thread-safe version of Machine.Start.
func (sm *SyncMachine[S, D]) Start(initial S) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Start(initial)
}

// Update is the thread-safe version of Machine.Update.
// Callbacks run while the lock is held and must not call back into sm.
func (sm *SyncMachine[S, D]) Update() Transition[S] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Update()
}

// Stop is the thread-safe version of Machine.Stop.
func (sm *SyncMachine[S, D]) Stop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Stop()
}

// Running is the thread-safe version of Machine.Running.
func (sm *SyncMachine[S, D]) Running() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Running()
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine[S, D]) Current() g.Option[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// Depth is the thread-safe version of Machine.Depth.
func (sm *SyncMachine[S, D]) Depth() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Depth()
}

// States is the thread-safe version of Machine.States.
func (sm *SyncMachine[S, D]) States() g.Slice[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.States()
}

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine[S, D]) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// Inspect calls fn with the machine's context while holding the read lock.
// fn must not retain ctx.
func (sm *SyncMachine[S, D]) Inspect(fn func(ctx *D)) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	fn(sm.m.Context())
}

// Snapshot calls fn with a copy of the stack, bottom first, and the context
// under a single read lock, so both belong to the same tick.
// fn must not retain ctx.
func (sm *SyncMachine[S, D]) Snapshot(fn func(states g.Slice[S], ctx *D)) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	fn(sm.m.States(), sm.m.Context())
}
