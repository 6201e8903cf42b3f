package concurrent

// ThenCompose runs fn once up succeeds and flattens the Stage[U] fn returns
// into the result, instead of leaving callers with a Stage[Stage[U]]. Its
// distinguishing behavior is cancellation: cancelling the returned stage
// before fn's inner stage exists cancels up instead (there's nothing else
// to cancel yet); cancelling it after fn's inner stage exists cancels that
// inner stage, recursively, through whatever it in turn depends on.
//
// Unlike a literal port of a Java thenCompose, there's no intermediate
// bridge stage here: the returned stage subscribes directly to whichever
// stage is authoritative at each point in time, first up, then fn's result
// once it exists. A plain registry subscription already gives the
// install-or-run-immediately semantics a bridge stage would otherwise exist
// to provide.
func ThenCompose[T, U any](up *Stage[T], fn func(T) *Stage[U]) *Stage[U] {
	return ThenComposeAsyncOn(up, Inline, fn)
}

// ThenComposeAsync is ThenCompose scheduled on up's default Executor.
func ThenComposeAsync[T, U any](up *Stage[T], fn func(T) *Stage[U]) *Stage[U] {
	return ThenComposeAsyncOn(up, up.defaultExecutor, fn)
}

// ThenComposeAsyncOn is ThenCompose scheduled on the given Executor.
func ThenComposeAsyncOn[T, U any](up *Stage[T], executor Executor, fn func(T) *Stage[U]) *Stage[U] {
	downExec := executor
	if downExec == Inline {
		downExec = up.defaultExecutor
	}
	down := newStage[U](downExec)
	down.addDependency(up)

	up.registry.subscribe(func(res outcome[T]) {
		onReject := func(err error) {
			var zero U
			down.complete(zero, &ExecutorRejection{Cause: err})
		}

		if res.err != nil {
			submitTo(executor, func() {
				var zero U
				down.complete(zero, forwardErr(res.err, "ThenCompose"))
			}, onReject)
			return
		}

		submitTo(executor, func() {
			inner := fn(res.val)

			// down's dependency was on up; up is done now, so this either
			// adds inner next to it (cancelling the finished up again is a
			// no-op), or, if down was already cancelled while fn was
			// running, cancels inner immediately. addDependency provides
			// both for free.
			down.addDependency(inner)

			inner.registry.subscribe(func(innerRes outcome[U]) {
				if innerRes.err != nil {
					down.complete(innerRes.val, forwardErr(innerRes.err, "ThenCompose"))
					return
				}
				down.complete(innerRes.val, nil)
			})
		}, onReject)
	})
	return down
}
