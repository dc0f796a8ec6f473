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

import "strings"

// affirmativeToken is the verdict token the batch judge must emit for a
// passing criterion.
const affirmativeToken = "yes"

// parseVerdictLines splits a batch judge response into its non-blank
// lines. The i-th line answers the i-th question.
func parseVerdictLines(response string) []string {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// affirmative reports whether a verdict line passes its criterion. The
// check is a case-insensitive containment, tolerating decoration such as
// numbering or "1. yes". Anything else fails closed.
func affirmative(line string) bool {
	return strings.Contains(strings.ToLower(line), affirmativeToken)
}
