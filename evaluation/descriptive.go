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
	"context"
	"log"
	"time"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/model"
)

// DescriptiveEvaluator answers qualitative criteria with a single batched
// completion call: one verdict line per question, fail-closed parsing.
type DescriptiveEvaluator struct {
	completer model.Completer
}

// NewDescriptiveEvaluator creates a descriptive evaluator over completer.
func NewDescriptiveEvaluator(completer model.Completer) *DescriptiveEvaluator {
	return &DescriptiveEvaluator{completer: completer}
}

// EvaluateBatch judges all criteria in batch with one model call. It
// always returns exactly one result per input criterion. A completion
// failure fails the entire batch; this is coarser than the layered
// tier's per-criterion containment, trading granularity for a single
// call's latency. The batch's total elapsed time is divided evenly
// across its members, since no per-criterion timing is observable
// inside a single call.
func (e *DescriptiveEvaluator) EvaluateBatch(ctx context.Context, value any, batch []criteria.Criterion) []Result {
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	prompt := buildBatchJudgmentPrompt(serializeValue(value), batch)

	response, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("evaluation: descriptive batch of %d failed: %v", len(batch), err)
		perCriterion := time.Since(start) / time.Duration(len(batch))
		results := make([]Result, 0, len(batch))
		for _, c := range batch {
			results = append(results, failedResult(c, criteria.StrategyDescriptive, perCriterion))
		}
		return results
	}

	lines := parseVerdictLines(response)
	perCriterion := time.Since(start) / time.Duration(len(batch))

	results := make([]Result, 0, len(batch))
	for i, c := range batch {
		// A response shorter than the question count fails the
		// unanswered criteria rather than erroring.
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		results = append(results, Result{
			CriterionID: c.ID,
			Passed:      line != "" && affirmative(line),
			Actual:      line,
			Expected:    c.GroundTruth.Value(),
			Strategy:    criteria.StrategyDescriptive,
			Elapsed:     perCriterion,
		})
	}
	return results
}
