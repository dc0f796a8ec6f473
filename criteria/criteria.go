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

// Package criteria declares the checks applied to a generated API description.
//
// A Criterion is pure data: it names a question about the output, the value
// that would count as a correct answer, and the strategy used to answer it.
// Criteria carry no behavior; the evaluation package dispatches on Strategy.
package criteria

// Strategy selects how a criterion is evaluated.
type Strategy string

const (
	// StrategyMeasurable is evaluated by a deterministic local function
	// over values extracted from the output. No model call is made.
	StrategyMeasurable Strategy = "measurable"

	// StrategyLayeredMeasurable first asks the model to extract a relevant
	// excerpt, then applies a deterministic measure to the excerpt.
	StrategyLayeredMeasurable Strategy = "layered_measurable"

	// StrategyDescriptive is a qualitative judgment answered by the model
	// directly. There is no deterministic fallback.
	StrategyDescriptive Strategy = "descriptive"
)

// MeasureName identifies a function in the measure library.
type MeasureName string

const (
	MeasureStringNotEmpty  MeasureName = "string_not_empty"
	MeasureArrayNotEmpty   MeasureName = "array_not_empty"
	MeasureWordCount       MeasureName = "word_count"
	MeasureSentenceCount   MeasureName = "sentence_count"
	MeasureKeywordPresence MeasureName = "keyword_presence"
	MeasureHTTPMethodValid MeasureName = "http_method_valid"
	MeasureStatusCodeValid MeasureName = "status_code_valid"
	MeasureFieldExists     MeasureName = "field_exists"
	MeasureRegexMatch      MeasureName = "regex_match"
	MeasureJSONStructure   MeasureName = "json_structure"
)

// Criterion is a single declared check against a generated output.
//
// Required fields depend on Strategy: measurable criteria need Measure and
// TargetPath; layered criteria need Extraction (and optionally Measure).
// A criterion missing its required fields still produces a failed result,
// never an error.
type Criterion struct {
	// ID uniquely identifies the criterion within a registry.
	ID string `json:"id" yaml:"id"`

	// Question is the natural-language form of the check. Descriptive
	// criteria send it to the judge verbatim.
	Question string `json:"question" yaml:"question"`

	// GroundTruth is the expected value or range the actual measurement
	// is compared against.
	GroundTruth GroundTruth `json:"groundTruth" yaml:"groundTruth"`

	// Strategy selects the evaluation tier.
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// Measure names the measure function for measurable criteria and for
	// the second stage of layered criteria.
	Measure MeasureName `json:"measure,omitempty" yaml:"measure,omitempty"`

	// TargetPath addresses the values to measure inside the output,
	// e.g. "endpoints[*].summary". Required for measurable criteria.
	TargetPath string `json:"targetPath,omitempty" yaml:"targetPath,omitempty"`

	// Extraction instructs the model which part of the output to return
	// for layered criteria.
	Extraction string `json:"extraction,omitempty" yaml:"extraction,omitempty"`
}
