package concurrent

// Executor runs submitted work, either on another goroutine or, like
// Inline, synchronously on the submitting one.
//
// Any type with a Submit(func()) method satisfies Executor, including
// *internal/pool.Pool.
type Executor interface {
	Submit(work func())
}

// RejectingExecutor is satisfied by an Executor that can refuse a
// submission instead of silently dropping it, most notably
// *internal/pool.Pool once it's been closed. Run, addCallback, and
// ThenCompose all prefer TrySubmit over Submit when an Executor implements
// it, so a rejected submission fails the dependent Stage with an
// *ExecutorRejection instead of leaving it Pending forever.
type RejectingExecutor interface {
	TrySubmit(work func()) error
}

// submitTo runs work on executor, preferring TrySubmit when executor
// implements RejectingExecutor. onReject runs instead of work if the
// submission is rejected; it never runs for a plain Executor, which has no
// way to report rejection in the first place.
func submitTo(executor Executor, work func(), onReject func(error)) {
	if re, ok := executor.(RejectingExecutor); ok {
		if err := re.TrySubmit(work); err != nil {
			onReject(err)
		}
		return
	}
	executor.Submit(work)
}

// inlineExecutor runs work synchronously, on the submitting goroutine. It's
// used as the default Executor for a Stage created without one, and as the
// bridge Executor for combinators (such as ThenCombine) that are built out
// of other combinators but must not introduce an extra goroutine hop of
// their own.
type inlineExecutor struct{}

func (inlineExecutor) Submit(work func()) { work() }

// Inline is an Executor that runs submitted work synchronously, on the
// calling goroutine. It's most useful for tests and for combinators whose
// callback is cheap enough that a goroutine hop would only add latency.
var Inline Executor = inlineExecutor{}
