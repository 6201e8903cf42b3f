// Package pool provides a bounded, fixed-size goroutine pool that can be used
// as a concurrent.Executor.
//
// It's a small, single-purpose relative of SimonCqk-pond's worker pool: a set
// of long-lived worker goroutines pulling work items off a shared, buffered
// channel. Unlike pond, it exposes no result future of its own — that's the
// concurrent package's job — it only accepts and runs func() work.
package pool
