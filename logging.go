package stackfsm

import (
	"context"
	"fmt"
	"log/slog"
)

// LogObserver returns an Observer that logs callbacks at Debug level and
// transitions other than None at Info level. machine names the stack in every record.
func LogObserver[S any](logger *slog.Logger, machine string) Observer[S] {
	logger = logger.With(slog.String("machine", machine))

	return func(ev Event, state S, t Transition[S]) {
		st := slog.String("state", fmt.Sprint(state))

		if ev != EventUpdate {
			logger.Debug("callback", slog.String("event", ev.String()), st)
			return
		}

		if t.IsNone() {
			return
		}

		logger.LogAttrs(context.Background(), slog.LevelInfo, "transition",
			st,
			slog.String("transition", t.String()),
		)
	}
}

// WithLogger wraps h with a LogObserver.
func WithLogger[S, D any](h Handler[S, D], logger *slog.Logger, machine string) Handler[S, D] {
	return Observe(h, LogObserver[S](logger, machine))
}
