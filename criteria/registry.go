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

package criteria

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in registry for generated API endpoint
// descriptions: 8 measurable criteria and 2 descriptive ones.
//
// Criteria are stateless and reusable across runs; callers may substitute
// any other set.
func Default() []Criterion {
	return []Criterion{
		{
			ID:          "endpoint_not_empty",
			Question:    "Is the endpoint path present?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureStringNotEmpty,
			TargetPath:  "endpoint",
		},
		{
			ID:          "endpoint_path_format",
			Question:    "Does the endpoint path start with a slash?",
			GroundTruth: StringTruth("/"),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureRegexMatch,
			TargetPath:  "endpoint",
		},
		{
			ID:          "endpoints_not_empty",
			Question:    "Is at least one endpoint method documented?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureArrayNotEmpty,
			TargetPath:  "endpoints",
		},
		{
			ID:          "methods_valid",
			Question:    "Is every documented method a standard HTTP method?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureHTTPMethodValid,
			TargetPath:  "endpoints[*].method",
		},
		{
			ID:          "summaries_present",
			Question:    "Does every endpoint method have a summary?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureStringNotEmpty,
			TargetPath:  "endpoints[*].summary",
		},
		{
			ID:          "summary_word_count",
			Question:    "Is every summary between 3 and 50 words?",
			GroundTruth: RangeTruth(3, 50),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureWordCount,
			TargetPath:  "endpoints[*].summary",
		},
		{
			ID:          "status_codes_valid",
			Question:    "Is every documented status code a valid HTTP status?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureStatusCodeValid,
			TargetPath:  "endpoints[*].responseSchema[*].status",
		},
		{
			ID:          "issue_severity_known",
			Question:    "Is every reported issue severity one of error, warning or info?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyMeasurable,
			Measure:     MeasureKeywordPresence,
			TargetPath:  "issues[*].severity",
		},
		{
			ID:          "summaries_actionable",
			Question:    "Do the endpoint summaries clearly describe what each endpoint does?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyDescriptive,
		},
		{
			ID:          "coverage_complete",
			Question:    "Does the description adequately cover request parameters, responses and error cases?",
			GroundTruth: BoolTruth(true),
			Strategy:    StrategyDescriptive,
		},
	}
}

// Parse reads a criteria set from YAML.
func Parse(data []byte) ([]Criterion, error) {
	var set struct {
		Criteria []Criterion `yaml:"criteria"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("criteria: failed to parse set: %w", err)
	}
	if len(set.Criteria) == 0 {
		return nil, fmt.Errorf("criteria: set defines no criteria")
	}
	seen := make(map[string]bool, len(set.Criteria))
	for _, c := range set.Criteria {
		if c.ID == "" {
			return nil, fmt.Errorf("criteria: criterion without id")
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("criteria: duplicate criterion id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return set.Criteria, nil
}

// Load reads a criteria set from a YAML file.
func Load(path string) ([]Criterion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("criteria: failed to read %s: %w", path, err)
	}
	return Parse(data)
}
