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

package pathquery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	root := map[string]any{
		"endpoint": "/api/users",
		"endpoints": []any{
			map[string]any{
				"method":  "GET",
				"summary": "List users",
				"responseSchema": []any{
					map[string]any{"status": 200.0},
					map[string]any{"status": 404.0},
				},
			},
			map[string]any{
				"method":  "POST",
				"summary": "Create a user",
				"responseSchema": []any{
					map[string]any{"status": 201.0},
				},
			},
		},
		"issues": []any{
			map[string]any{"severity": "warning"},
		},
	}

	tests := []struct {
		name string
		expr string
		want []any
	}{
		{
			name: "top level field",
			expr: "endpoint",
			want: []any{"/api/users"},
		},
		{
			name: "wildcard over sequence",
			expr: "endpoints[*].method",
			want: []any{"GET", "POST"},
		},
		{
			name: "nested wildcards",
			expr: "endpoints[*].responseSchema[*].status",
			want: []any{200.0, 404.0, 201.0},
		},
		{
			name: "missing field",
			expr: "nonexistent",
			want: nil,
		},
		{
			name: "missing nested field",
			expr: "x.y[*]",
			want: nil,
		},
		{
			name: "wildcard on non sequence",
			expr: "endpoint[*].method",
			want: nil,
		},
		{
			name: "empty expression",
			expr: "",
			want: nil,
		},
		{
			name: "field on scalar",
			expr: "endpoint.method",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(root, tt.expr)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestExtractNestedDocumentOrder(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": []any{
				map[string]any{"c": 1.0},
				map[string]any{"c": 2.0},
			},
		},
	}

	got := Extract(root, "a.b[*].c")
	want := []any{1.0, 2.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEmptyRoot(t *testing.T) {
	if got := Extract(map[string]any{}, "x.y[*]"); len(got) != 0 {
		t.Errorf("Extract on empty root = %v, want empty", got)
	}
}

func TestExtractSkipsNilValues(t *testing.T) {
	root := map[string]any{
		"endpoints": []any{
			map[string]any{"summary": "one"},
			map[string]any{"summary": nil},
			map[string]any{},
		},
	}

	got := Extract(root, "endpoints[*].summary")
	want := []any{"one"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	root := map[string]any{
		"endpoints": []any{
			map[string]any{"method": "GET"},
			map[string]any{"method": "GET"},
		},
	}

	got := Extract(root, "endpoints[*].method")
	want := []any{"GET", "GET"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}
