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
	"github.com/specgrade/specgrade/measure"
	"github.com/specgrade/specgrade/pathquery"
)

// EvaluateMeasurable evaluates a measurable criterion against value.
// It is pure and deterministic: identical inputs yield identical verdicts
// and actual values. A criterion missing its measure selector or target
// path fails immediately.
func EvaluateMeasurable(value any, c criteria.Criterion) Result {
	start := time.Now()

	if c.Measure == "" || c.TargetPath == "" {
		return failedResult(c, criteria.StrategyMeasurable, time.Since(start))
	}
	fn, ok := measure.Lookup(c.Measure)
	if !ok {
		return failedResult(c, criteria.StrategyMeasurable, time.Since(start))
	}

	values := pathquery.Extract(value, c.TargetPath)
	passed, actual := fn(values, c.GroundTruth)

	return Result{
		CriterionID: c.ID,
		Passed:      passed,
		Actual:      actual,
		Expected:    c.GroundTruth.Value(),
		Strategy:    criteria.StrategyMeasurable,
		Elapsed:     time.Since(start),
	}
}

// QuickReport is the aggregate of a measurable-only fast-path run.
type QuickReport struct {
	// Passed is true iff no measurable criterion failed.
	Passed bool `json:"passed"`

	// FailedIDs lists the criteria that failed, in evaluation order.
	FailedIDs []string `json:"failed_ids,omitempty"`

	// Details holds the individual results.
	Details []Result `json:"details"`
}

// QuickCheck runs only the measurable criteria of the default registry
// against value. It performs no network I/O and is safe for
// latency-sensitive call sites.
func QuickCheck(value any) QuickReport {
	return QuickCheckCriteria(value, criteria.Default())
}

// QuickCheckCriteria is QuickCheck over a caller-supplied criteria set.
// Non-measurable criteria are ignored.
func QuickCheckCriteria(value any, set []criteria.Criterion) QuickReport {
	report := QuickReport{Passed: true}
	for _, c := range set {
		if c.Strategy != criteria.StrategyMeasurable {
			continue
		}
		result := EvaluateMeasurable(value, c)
		report.Details = append(report.Details, result)
		if !result.Passed {
			report.Passed = false
			report.FailedIDs = append(report.FailedIDs, c.ID)
		}
	}
	return report
}
