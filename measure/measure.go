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

// Package measure provides the deterministic predicates applied to values
// extracted from a generated output.
//
// A measure function receives every value matched by a criterion's target
// path plus the criterion's ground truth, and returns an aggregate verdict:
// all matched values must satisfy the predicate. The representative actual
// value (the first match) is returned for diagnostics only.
package measure

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"

	"github.com/specgrade/specgrade/criteria"
)

// Func is a deterministic measure. It must not perform I/O.
type Func func(values []any, truth criteria.GroundTruth) (passed bool, actual any)

// severityKeywords is the allow-list checked by keyword_presence.
var severityKeywords = map[string]bool{
	"error":   true,
	"warning": true,
	"info":    true,
}

// httpMethods are the standard HTTP method tokens accepted by
// http_method_valid, compared case-insensitively.
var httpMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
	"TRACE":   true,
	"CONNECT": true,
}

var funcs = map[criteria.MeasureName]Func{
	criteria.MeasureStringNotEmpty:  stringNotEmpty,
	criteria.MeasureArrayNotEmpty:   arrayNotEmpty,
	criteria.MeasureWordCount:       wordCount,
	criteria.MeasureSentenceCount:   sentenceCount,
	criteria.MeasureKeywordPresence: keywordPresence,
	criteria.MeasureHTTPMethodValid: httpMethodValid,
	criteria.MeasureStatusCodeValid: statusCodeValid,
	criteria.MeasureFieldExists:     fieldExists,
	criteria.MeasureRegexMatch:      regexMatch,
	criteria.MeasureJSONStructure:   jsonStructure,
}

// Lookup returns the measure registered under name, or false when the
// selector is unknown.
func Lookup(name criteria.MeasureName) (Func, bool) {
	f, ok := funcs[name]
	return f, ok
}

// all reports whether every matched value satisfies pred. An empty match
// set fails: existence-style checks must see at least one value.
func all(values []any, pred func(any) bool) (bool, any) {
	if len(values) == 0 {
		return false, nil
	}
	passed := true
	for _, v := range values {
		if !pred(v) {
			passed = false
		}
	}
	return passed, values[0]
}

func stringNotEmpty(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	})
}

func arrayNotEmpty(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		seq, ok := v.([]any)
		return ok && len(seq) > 0
	})
}

func wordCount(values []any, truth criteria.GroundTruth) (bool, any) {
	min, max := bounds(truth)
	return all(values, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		n := float64(len(strings.Fields(s)))
		return n >= min && n <= max
	})
}

var (
	// sentenceTokenizerOnce loads the Punkt model on first use.
	sentenceTokenizerOnce sync.Once
	sentenceTokenizer     *sentences.DefaultSentenceTokenizer
)

// splitSentences segments text into non-empty sentences. It uses the
// English Punkt model, falling back to terminator splitting if the
// training data cannot be loaded.
func splitSentences(text string) []string {
	sentenceTokenizerOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			return
		}
		sentenceTokenizer = sentences.NewSentenceTokenizer(training)
	})

	var parts []string
	if sentenceTokenizer != nil {
		for _, sentence := range sentenceTokenizer.Tokenize(text) {
			parts = append(parts, sentence.Text)
		}
	} else {
		parts = strings.FieldsFunc(text, func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		})
	}

	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func sentenceCount(values []any, truth criteria.GroundTruth) (bool, any) {
	min, max := bounds(truth)
	return all(values, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		n := float64(len(splitSentences(s)))
		return n >= min && n <= max
	})
}

func keywordPresence(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		s, ok := v.(string)
		return ok && severityKeywords[s]
	})
}

func httpMethodValid(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		s, ok := v.(string)
		return ok && httpMethods[strings.ToUpper(s)]
	})
}

func statusCodeValid(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		n, ok := asNumber(v)
		return ok && n >= 100 && n <= 599
	})
}

func fieldExists(values []any, _ criteria.GroundTruth) (bool, any) {
	// The extractor filters nil values, so any surviving match exists.
	return all(values, func(v any) bool {
		return v != nil
	})
}

// regexMatch checks that each string starts with the expected prefix.
// Despite the selector name the comparison is a prefix match, not a
// pattern match; callers depend on this behavior.
func regexMatch(values []any, truth criteria.GroundTruth) (bool, any) {
	prefix := truth.String
	return all(values, func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, prefix)
	})
}

func jsonStructure(values []any, _ criteria.GroundTruth) (bool, any) {
	return all(values, func(v any) bool {
		s, ok := v.(string)
		return ok && json.Valid([]byte(s))
	})
}

// bounds extracts the inclusive range from a ground truth. A plain number
// is treated as an exact count.
func bounds(truth criteria.GroundTruth) (min, max float64) {
	switch truth.Kind {
	case criteria.GroundTruthRange:
		return truth.Min, truth.Max
	case criteria.GroundTruthNumber:
		return truth.Number, truth.Number
	default:
		return 0, 0
	}
}

// asNumber normalizes the numeric types produced by JSON and YAML decoding.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
