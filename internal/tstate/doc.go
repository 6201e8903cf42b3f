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

// Package tstate holds the atomically-updated state value of a single-shot
// stage task.
//
// It plays the same role as github.com/asmsh/promise's internal/status
// package, but scoped to the five states a stage task can be in, since here
// the callback fan-out (successors, late subscribers) is owned entirely by
// the registry, not by the state value itself.
package tstate
