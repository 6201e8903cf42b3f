package concurrent

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tascalate-go/concurrent/internal/tstate"
)

// canceller is anything that can be asked to cancel itself. Stage[T]
// satisfies it directly through its own Cancel method, so the dependency
// graph can hold stages of different type parameters in one slice.
type canceller interface {
	Cancel(interrupt bool) bool
}

// Stage represents an asynchronous computation that will eventually produce
// a T or fail. It's the unit every combinator in this package produces and
// consumes.
//
// The zero value is not usable; stages are created by Run, Supply,
// Completed, Failed, or by one of the combinator functions off an existing
// stage.
type Stage[T any] struct {
	id              uuid.UUID
	task            tstate.Machine
	defaultExecutor Executor
	registry        *registry[T]
	done            chan struct{}

	ctx       context.Context
	ctxCancel context.CancelFunc

	depMu               sync.Mutex
	dependencies        []canceller
	interruptedOnCancel bool

	val T
	err error
}

func newStage[T any](executor Executor) *Stage[T] {
	if executor == nil {
		executor = Inline
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Stage[T]{
		id:              uuid.New(),
		defaultExecutor: executor,
		registry:        &registry[T]{},
		done:            make(chan struct{}),
		ctx:             ctx,
		ctxCancel:       cancel,
	}
}

// ID returns the stage's debug identifier. It has no meaning beyond
// correlating trace output and log lines for the same stage.
func (s *Stage[T]) ID() uuid.UUID { return s.id }

// State returns the stage's current state.
func (s *Stage[T]) State() tstate.State { return s.task.Load() }

// IsDone reports whether the stage has reached a terminal state.
func (s *Stage[T]) IsDone() bool { return s.task.Load().IsTerminal() }

// IsCancelled reports whether the stage's terminal state is Cancelled.
func (s *Stage[T]) IsCancelled() bool { return s.task.Load() == tstate.Cancelled }

// addDependency records c as something to cancel if s is cancelled. If s is
// already cancelled, c is cancelled immediately, on the calling goroutine,
// matching the install-or-cancel-immediately race handling every combinator
// relies on. If s is terminal in some other, non-cancelled way, c is simply
// dropped: s can never cancel again, so there's nothing to track.
func (s *Stage[T]) addDependency(c canceller) {
	s.depMu.Lock()
	switch s.task.Load() {
	case tstate.Cancelled:
		interrupt := s.interruptedOnCancel
		s.depMu.Unlock()
		c.Cancel(interrupt)
		return
	default:
		if s.task.Load().IsTerminal() {
			s.depMu.Unlock()
			return
		}
		s.dependencies = append(s.dependencies, c)
		s.depMu.Unlock()
	}
}

// run executes fn on the calling goroutine (the Executor already put us on
// whichever goroutine that is) and completes s with its result. If s was
// cancelled before it got the chance to start, fn never runs.
func (s *Stage[T]) run(fn func(context.Context) (T, error)) {
	if !s.task.ToRunning() {
		return
	}
	trace(s, evStarted)
	val, err := fn(s.ctx)
	s.complete(val, err)
}

// complete moves s into a terminal state and notifies every subscriber and
// dependant. It's idempotent in the sense that only the first caller to win
// the underlying state transition has any effect; later calls (including a
// Cancel racing in concurrently) are silently ignored.
func (s *Stage[T]) complete(val T, err error) {
	// Stages that are never run through run() (Completed, Failed, and the
	// either family's funnel stage) reach complete while still Pending;
	// this no-ops for stages that already made it to Running on their own.
	s.task.ToRunning()

	if cf, isCancellation := err.(*CancellationFailure); isCancellation {
		if !s.task.ToCancelled() {
			return
		}
		s.finish(val, err)

		s.depMu.Lock()
		s.interruptedOnCancel = cf.Interrupted
		deps := s.dependencies
		s.dependencies = nil
		s.depMu.Unlock()

		for _, d := range deps {
			d.Cancel(cf.Interrupted)
		}
		trace(s, evCancelled)
		return
	}

	var ok bool
	if err != nil {
		ok = s.task.ToFailed()
	} else {
		ok = s.task.ToSucceeded()
	}
	if !ok {
		return
	}
	s.finish(val, err)

	s.depMu.Lock()
	s.dependencies = nil
	s.depMu.Unlock()

	if err != nil {
		trace(s, evFailed)
	} else {
		trace(s, evSucceeded)
	}
}

func (s *Stage[T]) finish(val T, err error) {
	s.val, s.err = val, err
	s.registry.settle(outcome[T]{val: val, err: err})
	close(s.done)
}

// Cancel attempts to move s into the Cancelled state. It returns true only
// for the call that performs the transition; only that call propagates
// cancellation to s's recorded dependencies, and, if interrupt is true,
// cancels the context.Context passed to s's own computation.
//
// Calling Cancel on a stage that has already reached any terminal state,
// including a previous Cancel call, returns false and does nothing.
func (s *Stage[T]) Cancel(interrupt bool) bool {
	if !s.task.ToCancelled() {
		return false
	}
	if interrupt {
		s.ctxCancel()
	}

	s.depMu.Lock()
	s.interruptedOnCancel = interrupt
	deps := s.dependencies
	s.dependencies = nil
	s.depMu.Unlock()

	var zero T
	s.finish(zero, &CancellationFailure{Interrupted: interrupt})
	trace(s, evCancelled)

	for _, d := range deps {
		d.Cancel(interrupt)
		trace(s, evDependencyCancelPropagated)
	}
	return true
}

// result strips one level of *CompositionFailure envelope, so callers of
// Get and GetContext see the cause a combinator's callback actually
// returned rather than the wrapping concurrent added while forwarding it.
func (s *Stage[T]) result() (T, error) {
	val, err := s.val, stripEnvelope(s.err)
	return val, err
}

// stripEnvelope removes one level of *CompositionFailure wrapping, the same
// unwrapping Get and GetContext apply, so any code observing a stage's
// terminal outcome (ExportedFuture included) sees the cause a callback
// actually returned rather than the wrapping concurrent added in transit.
func stripEnvelope(err error) error {
	if cf, ok := err.(*CompositionFailure); ok {
		return cf.Cause
	}
	return err
}

// Get blocks until s reaches a terminal state and returns its result.
func (s *Stage[T]) Get() (T, error) {
	<-s.done
	return s.result()
}

// GetContext blocks until s reaches a terminal state or ctx is done,
// whichever happens first.
func (s *Stage[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
