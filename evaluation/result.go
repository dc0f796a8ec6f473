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

package evaluation

import (
	"time"

	"github.com/specgrade/specgrade/criteria"
)

// Result is the outcome of evaluating one criterion in one run.
type Result struct {
	// CriterionID names the criterion this result belongs to.
	CriterionID string `json:"criterion_id"`

	// Passed reports the verdict. Degenerate criteria and evaluator
	// failures produce Passed == false.
	Passed bool `json:"passed"`

	// Actual is the representative observed value, for diagnostics.
	Actual any `json:"actual,omitempty"`

	// Expected echoes the criterion's ground truth.
	Expected any `json:"expected,omitempty"`

	// Strategy records which tier produced the result.
	Strategy criteria.Strategy `json:"strategy"`

	// Elapsed is the wall-clock time spent on this criterion. Batch
	// tiers split their total evenly across batch members.
	Elapsed time.Duration `json:"elapsed"`
}

// Document wraps the structured output under evaluation together with the
// results produced so far. The value itself is read-only to the engine;
// results accumulate additively across runs.
type Document struct {
	// Value is the generated output: an arbitrary tree of scalars,
	// objects and sequences, typically decoded from JSON.
	Value any `json:"value"`

	// Results holds every result appended to this document, in append
	// order. Prior entries are never rewritten.
	Results []Result `json:"results,omitempty"`
}

// NewDocument wraps value for evaluation.
func NewDocument(value any) *Document {
	return &Document{Value: value}
}

// AppendResults adds results to the document's trail.
func (d *Document) AppendResults(results ...Result) {
	d.Results = append(d.Results, results...)
}

// failedResult builds the fail-closed result shape shared by degenerate
// criteria and evaluator failures.
func failedResult(c criteria.Criterion, strategy criteria.Strategy, elapsed time.Duration) Result {
	return Result{
		CriterionID: c.ID,
		Passed:      false,
		Expected:    c.GroundTruth.Value(),
		Strategy:    strategy,
		Elapsed:     elapsed,
	}
}
