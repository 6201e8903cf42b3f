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

//go:build !concurrent_debug

package concurrent

// debugEvent identifies a point in a stage's lifecycle that the
// concurrent_debug build can trace. It's declared in both build variants
// (here and in debug_enabled.go) so they share the same call sites.
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

// trace is a no-op in ordinary builds. Build with -tags concurrent_debug to
// route these events through zerolog instead.
func trace[T any](s *Stage[T], ev debugEvent) {}
