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

package model

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

var _ Completer = (*GeminiCompleter)(nil)

// GeminiCompleter completes prompts with a Gemini model. Credentials are
// resolved by the genai client from the environment (GOOGLE_API_KEY or
// application default credentials).
type GeminiCompleter struct {
	client *genai.Client
	name   string
}

// NewGeminiCompleter creates a completer backed by the named Gemini model.
func NewGeminiCompleter(ctx context.Context, model string, cfg *genai.ClientConfig) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiCompleter{client: client, name: model}, nil
}

// Name returns the model name.
func (g *GeminiCompleter) Name() string {
	return g.name
}

// Complete sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("model uninitialized")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.name, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	var text string
	for _, part := range content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("response contained no text")
	}
	return text, nil
}
