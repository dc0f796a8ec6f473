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
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/evaluation"
)

func newTestRun(id string, createdAt time.Time) *Run {
	return &Run{
		ID:        id,
		Name:      "users-api",
		Passed:    true,
		CreatedAt: createdAt,
		Results: []evaluation.Result{
			{
				CriterionID: "endpoint_not_empty",
				Passed:      true,
				Actual:      "/api/users",
				Expected:    true,
				Strategy:    criteria.StrategyMeasurable,
				Elapsed:     time.Millisecond,
			},
		},
	}
}

// storeUnderTest runs the shared Store contract against every backend.
func storeUnderTest(t *testing.T, name string, newStore func(t *testing.T) Store) {
	t.Run(name, func(t *testing.T) {
		t.Run("SaveAndGet", func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			run := newTestRun("run-1", time.Now().UTC().Truncate(time.Second))
			if err := store.SaveRun(ctx, run); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			got, err := store.GetRun(ctx, "run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if diff := cmp.Diff(run, got); diff != "" {
				t.Errorf("run mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("SaveRejectsEmptyID", func(t *testing.T) {
			store := newStore(t)
			err := store.SaveRun(context.Background(), &Run{})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("SaveRun with empty ID = %v, want ErrInvalidInput", err)
			}
		})

		t.Run("GetUnknown", func(t *testing.T) {
			store := newStore(t)
			_, err := store.GetRun(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("GetRun(missing) = %v, want ErrNotFound", err)
			}
		})

		t.Run("ListNewestFirst", func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			base := time.Now().UTC().Truncate(time.Second)
			for i := 0; i < 3; i++ {
				run := newTestRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
				if err := store.SaveRun(ctx, run); err != nil {
					t.Fatalf("SaveRun: %v", err)
				}
			}

			runs, err := store.ListRuns(ctx)
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			if got, want := len(runs), 3; got != want {
				t.Fatalf("len(runs) = %d, want %d", got, want)
			}
			var ids []string
			for _, run := range runs {
				ids = append(ids, run.ID)
			}
			want := []string{"run-2", "run-1", "run-0"}
			if diff := cmp.Diff(want, ids); diff != "" {
				t.Errorf("list order mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("AppendResults", func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			run := newTestRun("run-1", time.Now().UTC().Truncate(time.Second))
			run.Passed = true
			if err := store.SaveRun(ctx, run); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			followUp := []evaluation.Result{{
				CriterionID: "summaries_actionable",
				Passed:      false,
				Strategy:    criteria.StrategyDescriptive,
			}}
			if err := store.AppendResults(ctx, "run-1", followUp); err != nil {
				t.Fatalf("AppendResults: %v", err)
			}

			got, err := store.GetRun(ctx, "run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if gotLen, want := len(got.Results), 2; gotLen != want {
				t.Fatalf("len(Results) = %d, want %d", gotLen, want)
			}
			if got.Results[0].CriterionID != "endpoint_not_empty" {
				t.Error("append rewrote an earlier result")
			}
			if got.Results[1].CriterionID != "summaries_actionable" {
				t.Errorf("Results[1].CriterionID = %q, want summaries_actionable", got.Results[1].CriterionID)
			}
			if !got.Passed {
				t.Error("AppendResults changed the run's Passed verdict")
			}
		})

		t.Run("AppendToUnknown", func(t *testing.T) {
			store := newStore(t)
			err := store.AppendResults(context.Background(), "missing", nil)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("AppendResults(missing) = %v, want ErrNotFound", err)
			}
		})

		t.Run("Delete", func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			run := newTestRun("run-1", time.Now().UTC().Truncate(time.Second))
			if err := store.SaveRun(ctx, run); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			if err := store.DeleteRun(ctx, "run-1"); err != nil {
				t.Fatalf("DeleteRun: %v", err)
			}
			if _, err := store.GetRun(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetRun after delete = %v, want ErrNotFound", err)
			}
			if err := store.DeleteRun(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second DeleteRun = %v, want ErrNotFound", err)
			}
		})
	})
}

func TestStores(t *testing.T) {
	storeUnderTest(t, "memory", func(t *testing.T) Store {
		return NewMemoryStore()
	})
	storeUnderTest(t, "file", func(t *testing.T) Store {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		return store
	})
	storeUnderTest(t, "sqlite", func(t *testing.T) Store {
		store, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStore: %v", err)
		}
		return store
	})
}

func TestMemoryStoreCopiesOnRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run := newTestRun("run-1", time.Now())
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	got.Results[0].Passed = false
	got.Name = "mutated"

	again, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !again.Results[0].Passed || again.Name != "users-api" {
		t.Error("stored run was mutated through a returned copy")
	}
}
