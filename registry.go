package concurrent

import "sync"

// outcome is the value a Stage[T] settles to: either a val with a nil err,
// or a non-nil err (a *CancellationFailure, a *CompositionFailure, or a raw
// user error for a stage that originated one). With a non-nil err, val is
// whatever the failing computation or callback returned alongside it, which
// is not necessarily the zero value.
type outcome[T any] struct {
	val T
	err error
}

// consumer is a callback subscribed to a registry. It receives the final
// outcome exactly once, whether it was registered before or after the
// registry settled.
type consumer[T any] func(outcome[T])

// registry is the fan-out point of a Stage[T]: every combinator built on top
// of a stage subscribes a consumer here instead of polling the stage's
// state. A registry settles exactly once; subscribers added afterwards are
// invoked immediately, synchronously, from within subscribe.
type registry[T any] struct {
	mu        sync.Mutex
	settled   bool
	result    outcome[T]
	consumers []consumer[T]
}

// subscribe registers c to run once the registry settles. If it has already
// settled, c runs immediately, on the calling goroutine.
func (r *registry[T]) subscribe(c consumer[T]) {
	r.mu.Lock()
	if r.settled {
		res := r.result
		r.mu.Unlock()
		c(res)
		return
	}
	r.consumers = append(r.consumers, c)
	r.mu.Unlock()
}

// settle records res as the final outcome and runs every consumer
// subscribed so far. It reports whether this call is the one that settled
// the registry; a registry can only settle once.
func (r *registry[T]) settle(res outcome[T]) bool {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return false
	}
	r.settled = true
	r.result = res
	cs := r.consumers
	r.consumers = nil
	r.mu.Unlock()

	for _, c := range cs {
		c(res)
	}
	return true
}

// completerSetup is the reified body of a combinator callback: given the
// upstream stage, the freshly created downstream stage, and the upstream's
// outcome, it runs whatever user code the combinator wraps and completes
// down accordingly. Turning the callback into a value like this lets
// addCallback own the scheduling (which Executor, whether to hop through
// one at all) independently of what the callback actually does.
type completerSetup[T, U any] func(up *Stage[T], down *Stage[U], res outcome[T])

// addCallback is the wiring point shared by ThenApply (and everything built
// on it), Exceptionally, WhenComplete, and Handle; ThenCompose and the
// either family's funnel subscribe to registries directly instead. It
// creates the downstream stage, records the cancellation dependency edge
// from down to up, and subscribes a consumer on up's registry that runs
// setup on the given executor. Inline is never installed as down's default
// Executor: down inherits up's default instead.
func addCallback[T, U any](up *Stage[T], executor Executor, setup completerSetup[T, U]) *Stage[U] {
	if executor == nil {
		executor = up.defaultExecutor
	}
	downExec := executor
	if downExec == Inline {
		downExec = up.defaultExecutor
	}
	down := newStage[U](downExec)
	down.addDependency(up)
	trace(up, evDependencyInstalled)

	up.registry.subscribe(func(res outcome[T]) {
		submitTo(executor, func() {
			setup(up, down, res)
		}, func(err error) {
			var zero U
			down.complete(zero, &ExecutorRejection{Cause: err})
		})
	})
	return down
}

// directSetup completes down with up's outcome as soon as it's available,
// without hopping through an Executor first. It's used by combinators whose
// callback does no user work of its own, most notably the either family's
// funnel stage, where routing the outcome through an executor would only
// widen the window in which the other, losing, upstream can still race in.
func directSetup[T any](down *Stage[T]) consumer[T] {
	return func(res outcome[T]) {
		down.complete(res.val, res.err)
	}
}
