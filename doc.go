// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package concurrent provides a promise/future composition engine whose
// distinguishing feature is recursive, interruption-aware cancellation across
// arbitrarily composed asynchronous stages.
//
// A Stage[T] carries the eventual result of some computation, plus a rich
// combinator surface (ThenApply, ThenCompose, ThenCombine, ApplyToEither,
// Exceptionally, WhenComplete, Handle, ...) for building pipelines out of it.
// What sets it apart from a plain future is Cancel: cancelling a stage near
// the end of a long pipeline walks backwards through every stage that was
// wired to produce its input, including stages spawned dynamically inside a
// ThenCompose callback once they exist, and cancels those too, optionally
// requesting cooperative interruption of a running computation via
// context.Context.
//
// A Stage has five states, and is in exactly one of them at any time:
// Pending: not yet started (it may already be queued on an Executor).
// Running: the computation is currently executing.
// Succeeded: a terminal state, the computation returned a value.
// Failed: a terminal state, the computation returned a non-nil error.
// Cancelled: a terminal state, Cancel won the race to end the stage.
//
//
// General notes:
//
// * Every combinator exists in three variants: a synchronous one that runs on
// whichever goroutine completed the upstream stage, an Async one scheduled on
// the upstream's default Executor, and an AsyncOn one taking an explicit
// Executor ahead of the callback.
//
// * Type-changing combinators (ThenApply, ThenCompose, ThenCombine,
// ApplyToEither, Handle) are package-level functions taking the receiver
// stage as their first argument, since a method cannot introduce a new type
// parameter of its own. Type-preserving combinators (Exceptionally,
// WhenComplete, Cancel, Get) remain ordinary methods on Stage[T].
//
// * Errors returned from user computations and callbacks are wrapped, at
// most once, in a *CompositionFailure as they cross a combinator boundary.
// Get and GetContext strip one such envelope so callers observe the
// original cause, not the wrapping.
//
// * Cancel(interrupt) returns true only for the one call that performs the
// Pending/Running -> Cancelled transition; only that call propagates
// cancellation to the stage's recorded dependencies. Later calls, and calls
// that lose the race, return false and do nothing further.
package concurrent
