package concurrent

import (
	"context"

	"github.com/tascalate-go/concurrent/internal/pool"
)

// EngineConfig configures a new Engine.
type EngineConfig struct {
	// Workers is the number of goroutines backing the Engine's own
	// internal/pool.Pool. If <= 0, internal/pool.New picks runtime.NumCPU.
	// Ignored once DefaultExecutor is set: the pool is still started, so
	// Close still has something to wait on, but nothing schedules work on
	// it.
	Workers int

	// DefaultExecutor, when set, is what Executor returns instead of the
	// Engine's own pool. The Engine still owns and closes its pool
	// regardless, so Close's shutdown guarantee doesn't depend on which
	// Executor a caller actually used.
	DefaultExecutor Executor

	// UncaughtFailure, when set, is called with the error of any stage
	// created through Track (or EngineRun/EngineSupply/EngineFailed, which
	// call Track themselves) that settles to Failed or Cancelled. It exists
	// for root stages nothing else ever calls Get on: without it, such a
	// stage's failure is simply never observed anywhere.
	UncaughtFailure func(err error)
}

// Engine owns a bounded worker pool and hands out stages scheduled on it. It
// exists so a program has one place to own and eventually shut down the
// goroutines backing its stages, instead of leaking an Inline-executor
// pipeline across the whole call graph.
type Engine struct {
	pool            *pool.Pool
	defaultExecutor Executor
	uncaughtFailure func(error)
}

// NewEngine starts an Engine per cfg.
func NewEngine(cfg EngineConfig) *Engine {
	p := pool.New(cfg.Workers)
	e := &Engine{pool: p, uncaughtFailure: cfg.UncaughtFailure}
	if cfg.DefaultExecutor != nil {
		e.defaultExecutor = cfg.DefaultExecutor
	} else {
		e.defaultExecutor = p
	}
	return e
}

// Executor returns the Executor stages created through this Engine should
// use: cfg.DefaultExecutor if one was given, otherwise the Engine's own
// pool. Pass it to Run, Supply, or any combinator's Async variant; a method
// cannot introduce the type parameter those functions need, so there's no
// Engine.Run of its own — see Track, EngineRun, and EngineSupply for the
// free-function equivalents that also wire UncaughtFailure.
func (e *Engine) Executor() Executor { return e.defaultExecutor }

// Close stops accepting new work on the Engine's own pool and waits for
// in-flight stage computations to finish. Stages already Pending and not
// yet started when Close is called may be abandoned, and then never reach a
// terminal state on their own; callers that need a bounded shutdown should
// Cancel outstanding stages before calling Close. If cfg.DefaultExecutor
// was set, Close still waits on the Engine's own (idle) pool, not on the
// external executor, which remains the caller's to shut down.
func (e *Engine) Close() {
	e.pool.Close()
}

// Track wires e's UncaughtFailure hook, if any, to s: once s settles to
// Failed or Cancelled, the hook is called with its error. It's meant for a
// caller that creates a stage and never calls Get on it itself — a
// fire-and-forget root stage — since otherwise nothing would ever observe
// that stage's outcome. Track returns s unchanged so it can wrap a call
// inline.
func Track[T any](e *Engine, s *Stage[T]) *Stage[T] {
	if e.uncaughtFailure == nil {
		return s
	}
	s.WhenCompleteAsyncOn(Inline, func(_ T, err error) error {
		if err != nil {
			e.uncaughtFailure(err)
		}
		return nil
	})
	return s
}

// EngineRun is Run scheduled on e's Executor, with its result wired through
// Track so a failure e's caller never calls Get on still reaches e's
// UncaughtFailure hook.
func EngineRun[T any](e *Engine, fn func(ctx context.Context) (T, error)) *Stage[T] {
	return Track(e, Run(e.Executor(), fn))
}

// EngineSupply is Supply scheduled on e's Executor, wired through Track the
// same way EngineRun is.
func EngineSupply[T any](e *Engine, fn func(ctx context.Context) T) *Stage[T] {
	return Track(e, Supply(e.Executor(), fn))
}

// EngineCompleted returns an already-Succeeded stage tied to e. It exists
// for symmetry with EngineRun/EngineSupply/EngineFailed; Track is a no-op
// here since a stage that starts Succeeded never has a failure to report.
func EngineCompleted[T any](e *Engine, val T) *Stage[T] {
	return Track(e, Completed(val))
}

// EngineFailed returns an already-Failed stage, as Failed does, but reports
// err to e's UncaughtFailure hook immediately, since a stage that starts
// terminal never runs a computation an Executor could reject in the first
// place.
func EngineFailed[T any](e *Engine, err error) *Stage[T] {
	return Track(e, Failed[T](err))
}
