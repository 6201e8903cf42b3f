package concurrent

// pairResult holds the settled values of the two upstreams a ThenCombine
// family combinator waits on, before fn narrows them down to a single
// result type.
type pairResult[T, U any] struct {
	a T
	b U
}

// ThenCombine waits for both a and b to succeed and passes their values to
// fn. Cancelling the returned stage cancels both a and b: the combinator is
// built out of ThenCompose and ThenApply, bridged on Inline, so the same
// dependency graph that makes ThenCompose's cancellation recursive does the
// work here too, with one addition — if a fails, or the bridge is cancelled,
// before b is linked in, b is cancelled explicitly, since the dependency
// edge to it wouldn't exist yet. A failure of b does not cancel a; the
// returned stage then fails once a has succeeded.
func ThenCombine[T, U, V any](a *Stage[T], b *Stage[U], fn func(T, U) (V, error)) *Stage[V] {
	return ThenCombineAsyncOn(a, b, Inline, fn)
}

// ThenCombineAsync is ThenCombine scheduled on a's default Executor.
func ThenCombineAsync[T, U, V any](a *Stage[T], b *Stage[U], fn func(T, U) (V, error)) *Stage[V] {
	return ThenCombineAsyncOn(a, b, a.defaultExecutor, fn)
}

// ThenCombineAsyncOn is ThenCombine scheduled on the given Executor.
func ThenCombineAsyncOn[T, U, V any](a *Stage[T], b *Stage[U], executor Executor, fn func(T, U) (V, error)) *Stage[V] {
	bridged := combineBridge(a, b, Inline)
	return ThenApplyAsyncOn(bridged, executor, func(p pairResult[T, U]) (V, error) {
		return fn(p.a, p.b)
	})
}

// ThenAcceptBoth is ThenCombine for a callback with no result of its own. It
// takes a and b as independent type parameters, like ThenCombine, rather
// than a method requiring b to share a's type: a method cannot introduce
// the type parameter U that b's value needs.
func ThenAcceptBoth[T, U any](a *Stage[T], b *Stage[U], fn func(T, U) error) *Stage[struct{}] {
	return ThenAcceptBothAsyncOn(a, b, Inline, fn)
}

// ThenAcceptBothAsync is ThenAcceptBoth scheduled on a's default Executor.
func ThenAcceptBothAsync[T, U any](a *Stage[T], b *Stage[U], fn func(T, U) error) *Stage[struct{}] {
	return ThenAcceptBothAsyncOn(a, b, a.defaultExecutor, fn)
}

// ThenAcceptBothAsyncOn is ThenAcceptBoth scheduled on the given Executor.
func ThenAcceptBothAsyncOn[T, U any](a *Stage[T], b *Stage[U], executor Executor, fn func(T, U) error) *Stage[struct{}] {
	return ThenCombineAsyncOn(a, b, executor, func(av T, bv U) (struct{}, error) {
		return struct{}{}, fn(av, bv)
	})
}

// RunAfterBoth waits for both a and b, ignoring their values, then runs fn.
// Like ThenAcceptBoth, it's a free function over independent type
// parameters rather than a method, since b's value type need not match a's.
func RunAfterBoth[T, U any](a *Stage[T], b *Stage[U], fn func() error) *Stage[struct{}] {
	return RunAfterBothAsyncOn(a, b, Inline, fn)
}

// RunAfterBothAsync is RunAfterBoth scheduled on a's default Executor.
func RunAfterBothAsync[T, U any](a *Stage[T], b *Stage[U], fn func() error) *Stage[struct{}] {
	return RunAfterBothAsyncOn(a, b, a.defaultExecutor, fn)
}

// RunAfterBothAsyncOn is RunAfterBoth scheduled on the given Executor.
func RunAfterBothAsyncOn[T, U any](a *Stage[T], b *Stage[U], executor Executor, fn func() error) *Stage[struct{}] {
	return ThenCombineAsyncOn(a, b, executor, func(T, U) (struct{}, error) {
		return struct{}{}, fn()
	})
}

func combineBridge[T, U any](a *Stage[T], b *Stage[U], executor Executor) *Stage[pairResult[T, U]] {
	bridged := ThenComposeAsyncOn(a, executor, func(av T) *Stage[pairResult[T, U]] {
		return ThenApplyAsyncOn(b, executor, func(bv U) (pairResult[T, U], error) {
			return pairResult[T, U]{a: av, b: bv}, nil
		})
	})

	// a can fail, or the whole bridge can be cancelled, before fn ever runs
	// and links b in as a dependency; without this, b would run to
	// completion for no reason in that case.
	bridged.registry.subscribe(func(res outcome[pairResult[T, U]]) {
		if res.err == nil {
			return
		}
		interrupt := false
		if cf, ok := res.err.(*CancellationFailure); ok {
			interrupt = cf.Interrupted
		}
		b.Cancel(interrupt)
	})
	return bridged
}
