package concurrent

import "context"

// Run schedules fn on executor and returns a Stage that completes with its
// result. fn receives a context.Context that is cancelled if the returned
// stage is cancelled with interrupt set to true; a well-behaved fn should
// check ctx and return early when it's done.
func Run[T any](executor Executor, fn func(context.Context) (T, error)) *Stage[T] {
	s := newStage[T](executor)
	trace(s, evScheduled)
	submitTo(executor, func() {
		s.run(fn)
	}, func(err error) {
		var zero T
		s.complete(zero, &ExecutorRejection{Cause: err})
	})
	return s
}

// Supply schedules fn, a computation that cannot fail, on executor.
func Supply[T any](executor Executor, fn func(context.Context) T) *Stage[T] {
	return Run(executor, func(ctx context.Context) (T, error) {
		return fn(ctx), nil
	})
}

// Completed returns a Stage that is already in the Succeeded state.
func Completed[T any](val T) *Stage[T] {
	s := newStage[T](Inline)
	s.complete(val, nil)
	return s
}

// Failed returns a Stage that is already in the Failed state.
func Failed[T any](err error) *Stage[T] {
	s := newStage[T](Inline)
	var zero T
	s.complete(zero, err)
	return s
}
