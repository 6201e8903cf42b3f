package concurrent

import (
	"context"
	"testing"
	"time"
)

// stageProbe records whether a long-running computation started, and
// whether it observed cancellation via its context rather than running to
// completion. It mirrors the State helper the recursive-cancellation
// scenarios these tests are grounded on used to distinguish "never started"
// from "started but interrupted" from "ran to completion".
type stageProbe struct {
	started   chan struct{}
	cancelled chan struct{}
	completed chan struct{}
}

func newStageProbe() *stageProbe {
	return &stageProbe{
		started:   make(chan struct{}),
		cancelled: make(chan struct{}),
		completed: make(chan struct{}),
	}
}

// longTask blocks until either its context is cancelled or d elapses,
// recording which of the two happened on p.
func (p *stageProbe) longTask(d time.Duration) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		close(p.started)
		select {
		case <-ctx.Done():
			close(p.cancelled)
			return 0, ctx.Err()
		case <-time.After(d):
			close(p.completed)
			return 1, nil
		}
	}
}

func waitClosed(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

// S1: cancelling the tail of a ThenApply chain forwards cancellation to the
// source stage feeding it, whether or not the map callback itself ever ran.
func TestS1_ForwardCancellationThroughMap(t *testing.T) {
	p := newStageProbe()
	src := Run(newGoExecutor(), p.longTask(500*time.Millisecond))
	mapped := ThenApplyAsyncOn(src, newGoExecutor(), func(v int) (int, error) { return v + 1, nil })

	waitClosed(t, p.started, "source to start")
	if !mapped.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, p.cancelled, "source to observe interruption")

	if !src.IsCancelled() {
		t.Fatalf("src.IsCancelled() = false")
	}
	if !mapped.IsCancelled() {
		t.Fatalf("mapped.IsCancelled() = false")
	}
}

// S2: cancelling a ThenCompose result before the callback has produced its
// inner stage cancels the outer (source) stage, and the callback never
// runs, since its input was cancelled.
func TestS2_RecursiveCancelThroughCompose_InnerNotYetStarted(t *testing.T) {
	p := newStageProbe()
	src := Run(newGoExecutor(), p.longTask(500*time.Millisecond))

	fnCalled := make(chan struct{})
	composed := ThenComposeAsyncOn(src, newGoExecutor(), func(v int) *Stage[int] {
		close(fnCalled)
		return Completed(v)
	})

	waitClosed(t, p.started, "source to start")
	if !composed.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, p.cancelled, "source to observe interruption")

	select {
	case <-fnCalled:
		t.Fatalf("compose callback ran despite the source being cancelled first")
	case <-time.After(50 * time.Millisecond):
	}
	if !composed.IsCancelled() {
		t.Fatalf("composed.IsCancelled() = false")
	}
}

// S3: cancelling a ThenCompose result after the callback has produced its
// inner stage, and that inner stage is itself mid-flight, cancels the inner
// stage (not the already-finished outer one).
func TestS3_RecursiveCancelThroughCompose_InnerRunning(t *testing.T) {
	outerP := newStageProbe()
	innerP := newStageProbe()

	src := Run(newGoExecutor(), outerP.longTask(10*time.Millisecond))

	var inner *Stage[int]
	linked := make(chan struct{})
	composed := ThenComposeAsyncOn(src, newGoExecutor(), func(v int) *Stage[int] {
		inner = Run(newGoExecutor(), innerP.longTask(500*time.Millisecond))
		close(linked)
		return inner
	})

	waitClosed(t, outerP.completed, "outer to finish")
	waitClosed(t, linked, "inner stage to be linked")
	waitClosed(t, innerP.started, "inner to start")

	if !composed.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, innerP.cancelled, "inner to observe interruption")

	if !inner.IsCancelled() {
		t.Fatalf("inner.IsCancelled() = false")
	}
	if src.IsCancelled() {
		t.Fatalf("src.IsCancelled() = true; the outer stage had already finished normally")
	}
	if !composed.IsCancelled() {
		t.Fatalf("composed.IsCancelled() = false")
	}
}

// S4: cancelling a ThenCombine result cancels both of the upstreams it
// combines, even if one of them is still running.
func TestS4_CombineCancelsBothUpstreams(t *testing.T) {
	pa := newStageProbe()
	pb := newStageProbe()
	a := Run(newGoExecutor(), pa.longTask(500*time.Millisecond))
	b := Run(newGoExecutor(), pb.longTask(500*time.Millisecond))

	combined := ThenCombineAsyncOn(a, b, newGoExecutor(), func(av, bv int) (int, error) {
		return av + bv, nil
	})

	waitClosed(t, pa.started, "a to start")
	waitClosed(t, pb.started, "b to start")
	time.Sleep(20 * time.Millisecond) // let the compose bridge link b in

	if !combined.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, pa.cancelled, "a to observe interruption")
	waitClosed(t, pb.cancelled, "b to observe interruption")

	if !a.IsCancelled() || !b.IsCancelled() {
		t.Fatalf("a.IsCancelled() = %v, b.IsCancelled() = %v, want both true", a.IsCancelled(), b.IsCancelled())
	}
}

// S5: cancelling an ApplyToEither result cancels both producers racing to
// feed it, not just whichever would have won.
func TestS5_EitherCancelsBothProducers(t *testing.T) {
	pa := newStageProbe()
	pb := newStageProbe()
	a := Run(newGoExecutor(), pa.longTask(500*time.Millisecond))
	b := Run(newGoExecutor(), pb.longTask(500*time.Millisecond))

	either := ApplyToEitherAsyncOn(a, b, newGoExecutor(), func(v int) (int, error) { return v, nil })

	waitClosed(t, pa.started, "a to start")
	waitClosed(t, pb.started, "b to start")

	if !either.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, pa.cancelled, "a to observe interruption")
	waitClosed(t, pb.cancelled, "b to observe interruption")
}

// S6: WhenComplete observes a cancellation the same way it would observe
// any other terminal outcome, and does not itself prevent the cancellation
// from being visible on the stage it wraps.
func TestS6_WhenCompleteObservesCancellation(t *testing.T) {
	p := newStageProbe()
	src := Run(newGoExecutor(), p.longTask(500*time.Millisecond))

	observed := make(chan error, 1)
	watched := src.WhenCompleteAsyncOn(newGoExecutor(), func(v int, err error) error {
		observed <- err
		return nil
	})

	waitClosed(t, p.started, "source to start")
	if !watched.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	waitClosed(t, p.cancelled, "source to observe interruption")

	select {
	case err := <-observed:
		if _, ok := err.(*CancellationFailure); !ok {
			t.Fatalf("observed err = %v (%T), want *CancellationFailure", err, err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for WhenComplete callback")
	}
}
