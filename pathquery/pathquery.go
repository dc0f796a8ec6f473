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

// Package pathquery provides read-only queries over nested structured
// values using dotted path expressions with wildcard array traversal.
//
// An expression is a dot-separated list of segments. A plain segment
// ("name") looks up a field; a wildcard segment ("name[*]") looks up a
// field whose value must be a sequence and flattens its elements.
// Extraction never fails: malformed expressions and missing fields simply
// contribute no matches.
package pathquery

import "strings"

const wildcardSuffix = "[*]"

// Extract evaluates expr against root and returns the matched values in
// document order. Duplicates are preserved. nil intermediate values are
// skipped, so a measure function is never handed a nil frontier entry.
func Extract(root any, expr string) []any {
	if expr == "" {
		return nil
	}
	frontier := []any{root}
	for _, segment := range strings.Split(expr, ".") {
		if len(frontier) == 0 {
			break
		}
		var next []any
		if name, ok := strings.CutSuffix(segment, wildcardSuffix); ok {
			for _, item := range frontier {
				if seq, ok := lookup(item, name).([]any); ok {
					next = append(next, seq...)
				}
			}
		} else {
			for _, item := range frontier {
				if v := lookup(item, segment); v != nil {
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return frontier
}

// lookup reads a field from a generic object. Only map-shaped values can
// hold fields; anything else (scalars, sequences, nil) yields nil.
func lookup(item any, field string) any {
	switch m := item.(type) {
	case map[string]any:
		return m[field]
	case map[string]string:
		if v, ok := m[field]; ok {
			return v
		}
		return nil
	default:
		return nil
	}
}
