// Copyright 2025 The specgrade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package evaluation runs declared criteria against a generated API
// description and reports which pass.
//
// # Evaluation tiers
//
// Criteria are evaluated by one of three strategies:
//
//   - Measurable: a deterministic measure applied to values extracted
//     from the output by path. Synchronous, no I/O.
//   - Layered: one model call extracts an excerpt, then a deterministic
//     measure is applied to it.
//   - Descriptive: a single batched model call answers all qualitative
//     questions at once with one verdict line per question.
//
// The Router partitions a criteria set by strategy and runs the tiers in
// order. Results come back tier-major (measurable, then layered, then
// descriptive), not in overall input order. Every submitted criterion
// yields exactly one result; evaluator failures are converted to failed
// results and logged, never returned as errors.
//
// # Fast path
//
// QuickCheck runs only the measurable tier of the default registry. It
// never touches the network and is safe to call on every generation
// cycle.
//
// # Failure containment
//
// A transport failure is localized to the smallest dependent unit: the
// single criterion for the layered tier, the whole batch for the
// descriptive tier. Verdict parsing fails closed: a missing or
// non-affirmative answer line counts as a failed criterion.
package evaluation
