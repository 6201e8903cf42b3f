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

//go:build concurrent_debug

package concurrent

import (
	"os"

	"github.com/rs/zerolog"
)

// tracer is the package-level logger used when built with -tags
// concurrent_debug. It writes to stderr in zerolog's console-friendly form,
// since this build tag exists for local debugging, not production log
// shipping.
var tracer = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// debugEvent identifies a point in a stage's lifecycle; see debug.go for
// the declaration used by ordinary builds.
type debugEvent int

const (
	_ debugEvent = iota

	evScheduled
	evStarted
	evSucceeded
	evFailed
	evCancelled
	evDependencyInstalled
	evDependencyCancelPropagated
)

func (e debugEvent) String() string {
	switch e {
	case evScheduled:
		return "scheduled"
	case evStarted:
		return "started"
	case evSucceeded:
		return "succeeded"
	case evFailed:
		return "failed"
	case evCancelled:
		return "cancelled"
	case evDependencyInstalled:
		return "dependency_installed"
	case evDependencyCancelPropagated:
		return "dependency_cancel_propagated"
	default:
		return "unknown"
	}
}

// trace emits a lifecycle event for s, tagged with its stage id, so a
// sequence of related traces can be reconstructed from a single stage's
// point of view even when several stages run concurrently.
func trace[T any](s *Stage[T], ev debugEvent) {
	tracer.Debug().
		Stringer("stage", s.id).
		Stringer("state", s.task.Load()).
		Str("event", ev.String()).
		Msg("stage lifecycle")
}
