package concurrent

// either builds a funnel stage: an internal Stage[T] that never runs a
// computation of its own, driven directly by whichever of a or b settles
// first. Its registry's settle-once semantics give first-outcome-wins for
// free; the loser is left to finish on its own, unobserved, unless
// something downstream cancels the funnel, which cancels both a and b.
func either[T any](a, b *Stage[T]) *Stage[T] {
	funnel := newStage[T](a.defaultExecutor)
	funnel.addDependency(a)
	funnel.addDependency(b)

	a.registry.subscribe(directSetup(funnel))
	b.registry.subscribe(directSetup(funnel))
	return funnel
}

// ApplyToEither runs fn on whichever of a or b produces a value first,
// ignoring the other. Cancelling the returned stage before either upstream
// has settled cancels both a and b; once one has settled, the other is not
// cancelled and runs to completion on its own.
func ApplyToEither[T, U any](a, b *Stage[T], fn func(T) (U, error)) *Stage[U] {
	return ApplyToEitherAsyncOn(a, b, Inline, fn)
}

// ApplyToEitherAsync is ApplyToEither scheduled on a's default Executor.
func ApplyToEitherAsync[T, U any](a, b *Stage[T], fn func(T) (U, error)) *Stage[U] {
	return ApplyToEitherAsyncOn(a, b, a.defaultExecutor, fn)
}

// ApplyToEitherAsyncOn is ApplyToEither scheduled on the given Executor.
func ApplyToEitherAsyncOn[T, U any](a, b *Stage[T], executor Executor, fn func(T) (U, error)) *Stage[U] {
	return ThenApplyAsyncOn(either(a, b), executor, fn)
}

// AcceptEither is ApplyToEither for a callback with no result of its own.
func AcceptEither[T any](a, b *Stage[T], fn func(T) error) *Stage[struct{}] {
	return AcceptEitherAsyncOn(a, b, Inline, fn)
}

// AcceptEitherAsync is AcceptEither scheduled on a's default Executor.
func AcceptEitherAsync[T any](a, b *Stage[T], fn func(T) error) *Stage[struct{}] {
	return AcceptEitherAsyncOn(a, b, a.defaultExecutor, fn)
}

// AcceptEitherAsyncOn is AcceptEither scheduled on the given Executor.
func AcceptEitherAsyncOn[T any](a, b *Stage[T], executor Executor, fn func(T) error) *Stage[struct{}] {
	return either(a, b).ThenAcceptAsyncOn(executor, fn)
}

// RunAfterEither runs fn once whichever of a or b settles first has
// succeeded, ignoring its value. If that first outcome is a failure, fn
// does not run and the returned stage fails with it.
func RunAfterEither[T any](a, b *Stage[T], fn func() error) *Stage[struct{}] {
	return RunAfterEitherAsyncOn(a, b, Inline, fn)
}

// RunAfterEitherAsync is RunAfterEither scheduled on a's default Executor.
func RunAfterEitherAsync[T any](a, b *Stage[T], fn func() error) *Stage[struct{}] {
	return RunAfterEitherAsyncOn(a, b, a.defaultExecutor, fn)
}

// RunAfterEitherAsyncOn is RunAfterEither scheduled on the given Executor.
func RunAfterEitherAsyncOn[T any](a, b *Stage[T], executor Executor, fn func() error) *Stage[struct{}] {
	return either(a, b).ThenRunAsyncOn(executor, fn)
}
