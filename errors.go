package concurrent

import "fmt"

// CancellationFailure is the error a Stage carries when it ends up in the
// Cancelled state. Every cancelled stage in a composition, whether it lost
// the race that called Cancel or was cancelled by propagation from a
// downstream stage, observes an equivalent (but not necessarily identical)
// *CancellationFailure instance; do not compare instances with ==.
type CancellationFailure struct {
	// Interrupted reports whether the cancellation requested cooperative
	// interruption of a running computation, via context.Context, rather
	// than only pre-empting a not-yet-started one.
	Interrupted bool
}

func (e *CancellationFailure) Error() string {
	if e.Interrupted {
		return "concurrent: stage was cancelled (interrupted)"
	}
	return "concurrent: stage was cancelled"
}

// CompositionFailure wraps a non-nil error returned by a user computation or
// callback as it crosses a combinator boundary. It's an envelope, not a
// second failure: a value already wrapped in a *CompositionFailure is never
// wrapped a second time, so Unwrap always reaches the original cause in one
// step.
type CompositionFailure struct {
	// Stage names which combinator produced the failure, e.g. "ThenApply",
	// for diagnostic purposes.
	Stage string
	Cause error
}

func (e *CompositionFailure) Error() string {
	return fmt.Sprintf("concurrent: %s failed: %s", e.Stage, e.Cause)
}

func (e *CompositionFailure) Unwrap() error {
	return e.Cause
}

func newCompositionFailure(stage string, cause error) *CompositionFailure {
	if cf, ok := cause.(*CompositionFailure); ok {
		return cf
	}
	return &CompositionFailure{Stage: stage, Cause: cause}
}

// ExecutorRejection is returned when an Executor refuses to run submitted
// work, for example because a bounded worker pool has been closed.
type ExecutorRejection struct {
	Cause error
}

func (e *ExecutorRejection) Error() string {
	return fmt.Sprintf("concurrent: executor rejected task: %s", e.Cause)
}

func (e *ExecutorRejection) Unwrap() error {
	return e.Cause
}
