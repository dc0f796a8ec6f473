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

// Package storage persists evaluation runs. The engine itself is
// stateless; stores exist for callers that want run history.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/specgrade/specgrade/evaluation"
)

var (
	// ErrNotFound indicates the requested run was not found.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidInput indicates invalid input parameters.
	ErrInvalidInput = errors.New("storage: invalid input")
)

// Run is one persisted evaluation of one document.
type Run struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Name is an optional caller-supplied label.
	Name string `json:"name,omitempty"`

	// Passed is the primary verdict at creation time. Results appended
	// later (the background descriptive pass) are observational and do
	// not change it.
	Passed bool `json:"passed"`

	// CreatedAt is the run's creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Results holds the per-criterion results, in append order.
	Results []evaluation.Result `json:"results"`
}

// Store persists evaluation runs.
type Store interface {
	// SaveRun stores a run. The run must carry a non-empty ID.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, runID string) (*Run, error)

	// ListRuns returns all stored runs, newest first.
	ListRuns(ctx context.Context) ([]Run, error)

	// AppendResults adds results to an existing run. The append is
	// additive only: prior results are never rewritten and the run's
	// Passed verdict is left untouched.
	AppendResults(ctx context.Context, runID string, results []evaluation.Result) error

	// DeleteRun removes a run.
	DeleteRun(ctx context.Context, runID string) error
}
