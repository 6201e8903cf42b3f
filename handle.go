package concurrent

// Handle runs fn with up's value and error, whichever is set, once up
// reaches a terminal state, including Cancelled, and produces a successful
// stage from fn's return value unless fn itself returns an error, which
// fails the returned stage. Handle sees cancellation too: fn's error
// argument may be a *CancellationFailure, and it's up to fn to decide what
// U to produce for it.
func Handle[T, U any](up *Stage[T], fn func(T, error) (U, error)) *Stage[U] {
	return HandleAsyncOn(up, Inline, fn)
}

// HandleAsync is Handle scheduled on up's default Executor.
func HandleAsync[T, U any](up *Stage[T], fn func(T, error) (U, error)) *Stage[U] {
	return HandleAsyncOn(up, up.defaultExecutor, fn)
}

// HandleAsyncOn is Handle scheduled on the given Executor.
func HandleAsyncOn[T, U any](up *Stage[T], executor Executor, fn func(T, error) (U, error)) *Stage[U] {
	return addCallback(up, executor, func(_ *Stage[T], down *Stage[U], res outcome[T]) {
		val, err := fn(res.val, res.err)
		if err != nil {
			down.complete(val, newCompositionFailure("Handle", err))
			return
		}
		down.complete(val, nil)
	})
}
