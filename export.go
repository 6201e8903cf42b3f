package concurrent

import "context"

// ExportedFuture is a read-only view of a Stage's terminal outcome: it
// exposes the accessors a caller receiving a finished computation needs,
// without the Cancel method and the cancellation-graph bookkeeping that
// comes with a full Stage. It exists for the same reason
// CompletableFuture.toCompletableFuture() does: to hand a result to code
// that shouldn't be able to reach back into a pipeline and cancel stages it
// doesn't own. Its shape (Value, OnSuccess, OnFailure alongside the
// blocking accessors) is grounded on the Future interface in
// SimonCqk-pond's future.go.
type ExportedFuture[T any] interface {
	Get() (T, error)
	GetContext(ctx context.Context) (T, error)
	IsDone() bool

	// Value returns the stage's outcome without blocking: it returns
	// ok == false if the stage hasn't settled yet.
	Value() (val T, err error, ok bool)

	// OnSuccess registers fn to run with the stage's value once it
	// succeeds. If the stage already succeeded, fn runs immediately, on
	// the calling goroutine.
	OnSuccess(fn func(T))

	// OnFailure registers fn to run with the stage's error once it fails
	// or is cancelled. If the stage already failed or was cancelled, fn
	// runs immediately, on the calling goroutine.
	OnFailure(fn func(error))
}

// exportedFuture adapts a Stage[T] into an ExportedFuture[T]. Unlike
// returning the Stage itself narrowed to an interface, it's a genuinely
// separate object: constructing it subscribes once to the stage's registry,
// on Inline, and caches the settled outcome for Value, OnSuccess, and
// OnFailure to consult afterwards without touching the stage again.
type exportedFuture[T any] struct {
	up   *Stage[T]
	reg  *registry[T]
	done chan struct{}
	val  T
	err  error
}

// ToExportedFuture returns a view of s with its Cancel method hidden.
func ToExportedFuture[T any](s *Stage[T]) ExportedFuture[T] {
	f := &exportedFuture[T]{up: s, reg: &registry[T]{}, done: make(chan struct{})}
	s.registry.subscribe(func(res outcome[T]) {
		f.val, f.err = res.val, stripEnvelope(res.err)
		f.reg.settle(outcome[T]{val: f.val, err: f.err})
		close(f.done)
	})
	return f
}

func (f *exportedFuture[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

func (f *exportedFuture[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *exportedFuture[T]) IsDone() bool { return f.up.IsDone() }

func (f *exportedFuture[T]) Value() (val T, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

func (f *exportedFuture[T]) OnSuccess(fn func(T)) {
	f.reg.subscribe(func(res outcome[T]) {
		if res.err == nil {
			fn(res.val)
		}
	})
}

func (f *exportedFuture[T]) OnFailure(fn func(error)) {
	f.reg.subscribe(func(res outcome[T]) {
		if res.err != nil {
			fn(res.err)
		}
	})
}
