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

// Package apidesc defines the reference shape of a generated API endpoint
// description. The evaluation engine itself works on untyped values; this
// package gives callers a typed view for display and tooling.
package apidesc

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Description is a generated description of an HTTP API endpoint.
type Description struct {
	// Endpoint is the documented path, e.g. "/api/users".
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// Endpoints documents the methods available on the path.
	Endpoints []Method `json:"endpoints" mapstructure:"endpoints"`

	// Issues lists problems the generator noticed in its own output.
	Issues []Issue `json:"issues,omitempty" mapstructure:"issues"`
}

// Method documents a single HTTP method on the endpoint.
type Method struct {
	Method         string     `json:"method" mapstructure:"method"`
	Summary        string     `json:"summary" mapstructure:"summary"`
	ResponseSchema []Response `json:"responseSchema,omitempty" mapstructure:"responseSchema"`
}

// Response documents one response variant of a method.
type Response struct {
	Status      int    `json:"status" mapstructure:"status"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Issue is a generator-reported problem with the description.
type Issue struct {
	Severity string `json:"severity" mapstructure:"severity"`
	Message  string `json:"message,omitempty" mapstructure:"message"`
}

// Decode maps a generic JSON-decoded value onto a typed Description.
func Decode(value any) (*Description, error) {
	var desc Description
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &desc,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("apidesc: failed to build decoder: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("apidesc: failed to decode description: %w", err)
	}
	return &desc, nil
}
