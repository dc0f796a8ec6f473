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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specgrade/specgrade/criteria"
)

// buildExtractionPrompt asks the model to return only the part of the
// output named by the criterion's extraction instruction.
func buildExtractionPrompt(instruction, document string) string {
	return fmt.Sprintf(`You are extracting a section from a generated API description.

**Instruction:**
%s

**API Description:**
%s

Return only the relevant excerpt, with no explanation or commentary.`, instruction, document)
}

// buildBatchJudgmentPrompt enumerates the batch's questions over a single
// copy of the document. The model must answer with exactly one line per
// question, yes or no, in input order; the parser depends on that shape.
func buildBatchJudgmentPrompt(document string, batch []criteria.Criterion) string {
	var questions strings.Builder
	for i, c := range batch {
		fmt.Fprintf(&questions, "%d. [%s] %s\n", i+1, c.ID, c.Question)
	}

	return fmt.Sprintf(`You are an expert reviewer assessing the quality of a generated API description.

**API Description:**
%s

**Questions:**
%s
Answer each question with exactly one line containing only "yes" or "no",
in the same order as the questions. Do not add explanations.`, document, questions.String())
}

// serializeValue renders the output value for inclusion in a prompt.
func serializeValue(value any) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
