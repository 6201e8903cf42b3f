package concurrent

import (
	"sync"
	"sync/atomic"
)

// serialExecutor runs submitted work on a single background goroutine, one
// item at a time, so tests can reliably keep a second submission Pending
// while the first is still in flight.
type serialExecutor struct {
	workQ chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

func newSerialExecutor() *serialExecutor {
	e := &serialExecutor{
		workQ: make(chan func(), 8),
		done:  make(chan struct{}),
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for {
			select {
			case <-e.done:
				return
			case work := <-e.workQ:
				work()
			}
		}
	}()
	return e
}

func (e *serialExecutor) Submit(work func()) {
	e.workQ <- work
}

// drain blocks until every item submitted so far has run, by submitting a
// marker and waiting for it.
func (e *serialExecutor) drain() {
	marker := make(chan struct{})
	e.Submit(func() { close(marker) })
	<-marker
}

func (e *serialExecutor) stop() {
	close(e.done)
	e.wg.Wait()
}

// goExecutor runs each submission on its own goroutine, unbounded. It's
// used by tests that need a computation to actually run concurrently with
// the test goroutine, without the complexity of internal/pool.Pool.
type goExecutor struct{}

func newGoExecutor() goExecutor { return goExecutor{} }

func (goExecutor) Submit(work func()) { go work() }

// recordingExecutor runs work inline while counting submissions, so tests
// can assert an Async combinator actually used an executor rather than
// running inline.
type recordingExecutor struct {
	calls int64
}

func (r *recordingExecutor) Submit(work func()) {
	atomic.AddInt64(&r.calls, 1)
	work()
}

// rejectingExecutor implements RejectingExecutor and refuses every
// submission, so tests can exercise the *ExecutorRejection path without
// standing up and closing a real internal/pool.Pool.
type rejectingExecutor struct {
	err error
}

func (r rejectingExecutor) Submit(work func()) {}

func (r rejectingExecutor) TrySubmit(work func()) error { return r.err }
