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

package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/specgrade/specgrade/evaluation"
)

// MemoryStore keeps runs in process memory. Suitable for tests and
// development.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*Run),
	}
}

// SaveRun stores a run.
func (m *MemoryStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = copyRun(run)
	return nil
}

// GetRun retrieves a run by ID.
func (m *MemoryStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[runID]
	if !exists {
		return nil, ErrNotFound
	}
	return copyRun(run), nil
}

// ListRuns returns all stored runs, newest first.
func (m *MemoryStore) ListRuns(ctx context.Context) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// AppendResults adds results to an existing run.
func (m *MemoryStore) AppendResults(ctx context.Context, runID string, results []evaluation.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return ErrNotFound
	}
	run.Results = append(run.Results, results...)
	return nil
}

// DeleteRun removes a run.
func (m *MemoryStore) DeleteRun(ctx context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[runID]; !exists {
		return ErrNotFound
	}
	delete(m.runs, runID)
	return nil
}

// copyRun protects stored runs from external mutation.
func copyRun(run *Run) *Run {
	copied := *run
	copied.Results = append([]evaluation.Result(nil), run.Results...)
	return &copied
}
