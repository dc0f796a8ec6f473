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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/model"
)

// Router partitions a criteria set by strategy and runs the three
// evaluation tiers in sequence.
type Router struct {
	completer model.Completer
	tracer    trace.Tracer
}

// NewRouter creates a router. The completer may be nil, in which case the
// LLM-backed tiers are skipped entirely: their criteria produce zero
// results rather than failed ones. Callers that omit the completer
// silently lose layered and descriptive results.
func NewRouter(completer model.Completer) *Router {
	return &Router{
		completer: completer,
		tracer:    otel.Tracer("github.com/specgrade/specgrade/evaluation"),
	}
}

// EvaluateAll evaluates set against value and returns the concatenated
// results in tier-major order: measurable first, then layered, then
// descriptive. Within a tier, results follow the tier's input order.
// Output order therefore does not match the overall input order when
// strategies are interleaved.
//
// EvaluateAll never returns an error: evaluator failures surface as
// failed results.
func (r *Router) EvaluateAll(ctx context.Context, value any, set []criteria.Criterion) []Result {
	var measurable, layered, descriptive []criteria.Criterion
	for _, c := range set {
		switch c.Strategy {
		case criteria.StrategyLayeredMeasurable:
			layered = append(layered, c)
		case criteria.StrategyDescriptive:
			descriptive = append(descriptive, c)
		default:
			measurable = append(measurable, c)
		}
	}

	results := make([]Result, 0, len(set))

	ctx, span := r.tracer.Start(ctx, "evaluation.measurable",
		trace.WithAttributes(attribute.Int("criteria.count", len(measurable))))
	for _, c := range measurable {
		results = append(results, EvaluateMeasurable(value, c))
	}
	span.End()

	// One completion call per criterion, sequentially; total layered
	// latency is linear in criterion count.
	if len(layered) > 0 && r.completer != nil {
		ctx, span := r.tracer.Start(ctx, "evaluation.layered",
			trace.WithAttributes(attribute.Int("criteria.count", len(layered))))
		evaluator := NewLayeredEvaluator(r.completer)
		for _, c := range layered {
			results = append(results, evaluator.Evaluate(ctx, value, c))
		}
		span.End()
	}

	if len(descriptive) > 0 && r.completer != nil {
		ctx, span := r.tracer.Start(ctx, "evaluation.descriptive",
			trace.WithAttributes(attribute.Int("criteria.count", len(descriptive))))
		evaluator := NewDescriptiveEvaluator(r.completer)
		results = append(results, evaluator.EvaluateBatch(ctx, value, descriptive)...)
		span.End()
	}

	return results
}

// EvaluateDocument evaluates set against doc's value and appends the
// produced results to the document's trail before returning them.
func (r *Router) EvaluateDocument(ctx context.Context, doc *Document, set []criteria.Criterion) []Result {
	results := r.EvaluateAll(ctx, doc.Value, set)
	doc.AppendResults(results...)
	return results
}
