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
	"strings"
	"time"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/measure"
	"github.com/specgrade/specgrade/model"
)

// LayeredEvaluator answers layered_measurable criteria: one completion
// call extracts the relevant excerpt, then a deterministic measure is
// applied to the raw completion text.
type LayeredEvaluator struct {
	completer model.Completer
}

// NewLayeredEvaluator creates a layered evaluator over completer.
func NewLayeredEvaluator(completer model.Completer) *LayeredEvaluator {
	return &LayeredEvaluator{completer: completer}
}

// Evaluate runs one criterion. A missing extraction instruction fails
// immediately with no model call. Completion failures are logged and
// converted to a failed result so a single criterion cannot abort the
// batch.
func (e *LayeredEvaluator) Evaluate(ctx context.Context, value any, c criteria.Criterion) Result {
	start := time.Now()

	if c.Extraction == "" {
		return failedResult(c, criteria.StrategyLayeredMeasurable, time.Since(start))
	}

	prompt := buildExtractionPrompt(c.Extraction, serializeValue(value))
	text, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("evaluation: layered criterion %s: completion failed: %v", c.ID, err)
		return failedResult(c, criteria.StrategyLayeredMeasurable, time.Since(start))
	}

	passed := e.measureExcerpt(text, c)
	return Result{
		CriterionID: c.ID,
		Passed:      passed,
		Actual:      text,
		Expected:    c.GroundTruth.Value(),
		Strategy:    criteria.StrategyLayeredMeasurable,
		Elapsed:     time.Since(start),
	}
}

// measureExcerpt applies the criterion's measure to the completion text.
// Only word_count is wired for the layered tier; any other selector falls
// back to a non-empty check on the excerpt.
func (e *LayeredEvaluator) measureExcerpt(text string, c criteria.Criterion) bool {
	if c.Measure == criteria.MeasureWordCount {
		if fn, ok := measure.Lookup(criteria.MeasureWordCount); ok {
			passed, _ := fn([]any{text}, c.GroundTruth)
			return passed
		}
	}
	return strings.TrimSpace(text) != ""
}
