package pool

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by TrySubmit once the pool has been closed.
var ErrClosed = errors.New("pool: pool has been closed, no more work accepted")

// defaultQueueFactor sizes the work queue relative to the worker count, so a
// short burst of submissions doesn't block the submitting goroutine.
const defaultQueueFactor = 4

// Pool is a fixed-size worker pool. The zero value is not usable; construct
// one with New.
type Pool struct {
	workQ  chan func()
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// New starts a Pool with size worker goroutines. If size <= 0, runtime.NumCPU
// workers are started.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		workQ:  make(chan func(), size*defaultQueueFactor),
		closed: make(chan struct{}),
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.closed:
			return
		case work, ok := <-p.workQ:
			if !ok {
				return
			}
			work()
		}
	}
}

// Submit enqueues work to run on some worker goroutine. If the pool has been
// closed, work is dropped silently. Submit satisfies concurrent.Executor;
// Pool also satisfies concurrent.RejectingExecutor through TrySubmit, which
// callers that need to observe a closed pool should prefer.
func (p *Pool) Submit(work func()) {
	_ = p.TrySubmit(work)
}

// TrySubmit enqueues work to run on some worker goroutine, returning
// ErrClosed if the pool has already been closed instead of blocking forever
// on a channel nobody drains anymore. It satisfies concurrent.RejectingExecutor.
func (p *Pool) TrySubmit(work func()) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}

	select {
	case <-p.closed:
		return ErrClosed
	case p.workQ <- work:
		return nil
	}
}

// Close stops accepting new work and waits for in-flight work to finish.
// Queued-but-not-yet-started work may or may not run: each worker picks
// between the close signal and the queue at random, so some of it may be
// abandoned.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.closed)
	})
	p.wg.Wait()
}
