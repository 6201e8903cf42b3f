package concurrent

// WhenComplete runs fn with up's value and error once up reaches a terminal
// state, purely for its side effects, and passes up's outcome through: a
// value or a *CancellationFailure unchanged, any other error inside a
// *CompositionFailure envelope (which Get strips). WhenComplete is the one
// combinator that lets a caller observe a cancellation without the
// cancellation itself being treated as a recoverable failure.
//
// If fn itself returns a non-nil error, that error replaces up's outcome on
// the returned stage, whether up succeeded, failed, or was cancelled.
func (up *Stage[T]) WhenComplete(fn func(T, error) error) *Stage[T] {
	return up.WhenCompleteAsyncOn(Inline, fn)
}

// WhenCompleteAsync is WhenComplete scheduled on up's default Executor.
func (up *Stage[T]) WhenCompleteAsync(fn func(T, error) error) *Stage[T] {
	return up.WhenCompleteAsyncOn(up.defaultExecutor, fn)
}

// WhenCompleteAsyncOn is WhenComplete scheduled on the given Executor.
func (up *Stage[T]) WhenCompleteAsyncOn(executor Executor, fn func(T, error) error) *Stage[T] {
	return addCallback(up, executor, func(_ *Stage[T], down *Stage[T], res outcome[T]) {
		if err := fn(res.val, res.err); err != nil {
			var zero T
			down.complete(zero, newCompositionFailure("WhenComplete", err))
			return
		}
		if res.err != nil {
			down.complete(res.val, forwardErr(res.err, "WhenComplete"))
			return
		}
		down.complete(res.val, nil)
	})
}
