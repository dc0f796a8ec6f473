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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/specgrade/specgrade/evaluation"
)

// FileStore persists runs as JSON files, one per run, under
// <basePath>/runs/<runID>.json.
type FileStore struct {
	mu       sync.RWMutex
	basePath string
}

// NewFileStore creates a file-backed store rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "runs"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (f *FileStore) runPath(runID string) string {
	return filepath.Join(f.basePath, "runs", fmt.Sprintf("%s.json", runID))
}

// SaveRun stores a run.
func (f *FileStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writeRun(run)
}

// GetRun retrieves a run by ID.
func (f *FileStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.readRun(runID)
}

// ListRuns returns all stored runs, newest first.
func (f *FileStore) ListRuns(ctx context.Context) ([]Run, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(f.basePath, "runs"))
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var runs []Run
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.basePath, "runs", entry.Name()))
		if err != nil {
			continue
		}
		var run Run
		if err := json.Unmarshal(data, &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// AppendResults adds results to an existing run.
func (f *FileStore) AppendResults(ctx context.Context, runID string, results []evaluation.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	run, err := f.readRun(runID)
	if err != nil {
		return err
	}
	run.Results = append(run.Results, results...)
	return f.writeRun(run)
}

// DeleteRun removes a run.
func (f *FileStore) DeleteRun(ctx context.Context, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.runPath(runID)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	return nil
}

func (f *FileStore) readRun(runID string) (*Run, error) {
	data, err := os.ReadFile(f.runPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

func (f *FileStore) writeRun(run *Run) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := os.WriteFile(f.runPath(run.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}
