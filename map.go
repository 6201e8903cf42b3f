package concurrent

// ThenApply transforms up's value with fn once up succeeds. If up fails or
// is cancelled, fn never runs and the failure (or cancellation) propagates
// to the returned stage unchanged, save for a *CompositionFailure envelope
// around a plain error.
//
// It runs fn on whichever goroutine completed up. Use ThenApplyAsync to hop
// onto up's default Executor, or ThenApplyAsyncOn to name one explicitly.
func ThenApply[T, U any](up *Stage[T], fn func(T) (U, error)) *Stage[U] {
	return ThenApplyAsyncOn(up, Inline, fn)
}

// ThenApplyAsync is ThenApply scheduled on up's default Executor.
func ThenApplyAsync[T, U any](up *Stage[T], fn func(T) (U, error)) *Stage[U] {
	return ThenApplyAsyncOn(up, up.defaultExecutor, fn)
}

// ThenApplyAsyncOn is ThenApply scheduled on the given Executor.
func ThenApplyAsyncOn[T, U any](up *Stage[T], executor Executor, fn func(T) (U, error)) *Stage[U] {
	return addCallback(up, executor, func(_ *Stage[T], down *Stage[U], res outcome[T]) {
		if res.err != nil {
			var zero U
			down.complete(zero, forwardErr(res.err, "ThenApply"))
			return
		}
		val, err := fn(res.val)
		if err != nil {
			down.complete(val, newCompositionFailure("ThenApply", err))
			return
		}
		down.complete(val, nil)
	})
}

// ThenAccept runs fn for its side effects once up succeeds, discarding the
// value. It runs synchronously with up's completion; see ThenAcceptAsync and
// ThenAcceptAsyncOn for the async variants.
func (up *Stage[T]) ThenAccept(fn func(T) error) *Stage[struct{}] {
	return up.ThenAcceptAsyncOn(Inline, fn)
}

// ThenAcceptAsync is ThenAccept scheduled on up's default Executor.
func (up *Stage[T]) ThenAcceptAsync(fn func(T) error) *Stage[struct{}] {
	return up.ThenAcceptAsyncOn(up.defaultExecutor, fn)
}

// ThenAcceptAsyncOn is ThenAccept scheduled on the given Executor.
func (up *Stage[T]) ThenAcceptAsyncOn(executor Executor, fn func(T) error) *Stage[struct{}] {
	return ThenApplyAsyncOn(up, executor, func(val T) (struct{}, error) {
		return struct{}{}, fn(val)
	})
}

// ThenRun runs fn once up succeeds, ignoring its value entirely. It runs
// synchronously with up's completion; see ThenRunAsync and ThenRunAsyncOn
// for the async variants.
func (up *Stage[T]) ThenRun(fn func() error) *Stage[struct{}] {
	return up.ThenRunAsyncOn(Inline, fn)
}

// ThenRunAsync is ThenRun scheduled on up's default Executor.
func (up *Stage[T]) ThenRunAsync(fn func() error) *Stage[struct{}] {
	return up.ThenRunAsyncOn(up.defaultExecutor, fn)
}

// ThenRunAsyncOn is ThenRun scheduled on the given Executor.
func (up *Stage[T]) ThenRunAsyncOn(executor Executor, fn func() error) *Stage[struct{}] {
	return up.ThenAcceptAsyncOn(executor, func(T) error {
		return fn()
	})
}

// forwardErr passes a *CancellationFailure through unchanged (cancellation
// isn't a combinator failure to wrap, it's a state to propagate) and wraps
// anything else, including a plain user error reaching this boundary for
// the first time, in a *CompositionFailure naming stage.
func forwardErr(err error, stage string) error {
	if _, ok := err.(*CancellationFailure); ok {
		return err
	}
	return newCompositionFailure(stage, err)
}
