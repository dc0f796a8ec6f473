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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/specgrade/specgrade/criteria"
	"github.com/specgrade/specgrade/evaluation"
	"github.com/specgrade/specgrade/storage"
)

// evaluateRequest is the body of POST /v1/evaluate and /v1/quickcheck.
type evaluateRequest struct {
	// Name optionally labels the run.
	Name string `json:"name,omitempty"`

	// Value is the generated output to evaluate.
	Value any `json:"value"`
}

// quickCheckResponse extends the engine's report with the stored run ID
// so clients can poll for the background descriptive verdicts.
type quickCheckResponse struct {
	RunID string `json:"run_id"`
	evaluation.QuickReport
}

// Evaluate runs the full three-tier evaluation synchronously and persists
// the run.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	results := s.router.EvaluateAll(r.Context(), req.Value, s.criteria)
	run := &storage.Run{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Passed:    allPassed(results),
		CreatedAt: time.Now(),
		Results:   results,
	}
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	encodeJSON(run, http.StatusOK, w)
}

// QuickCheck runs the measurable fast path, responds immediately, and
// defers the descriptive tier to a detached best-effort pass that appends
// its results to the stored run. The follow-up never gates the response.
func (s *Server) QuickCheck(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	report := evaluation.QuickCheckCriteria(req.Value, s.criteria)
	run := &storage.Run{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Passed:    report.Passed,
		CreatedAt: time.Now(),
		Results:   report.Details,
	}
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.completer != nil {
		s.scheduleFollowUp(run.ID, req.Value)
	}

	encodeJSON(quickCheckResponse{RunID: run.ID, QuickReport: report}, http.StatusOK, w)
}

// scheduleFollowUp runs the descriptive tier detached from the request.
// The pass is observational: its results are appended to the run and any
// failure is only logged.
func (s *Server) scheduleFollowUp(runID string, value any) {
	var descriptive []criteria.Criterion
	for _, c := range s.criteria {
		if c.Strategy == criteria.StrategyDescriptive {
			descriptive = append(descriptive, c)
		}
	}
	if len(descriptive) == 0 {
		return
	}

	s.background.Go(func() error {
		// The request context is gone by the time this runs.
		ctx := context.Background()
		results := s.router.EvaluateAll(ctx, value, descriptive)
		if err := s.store.AppendResults(ctx, runID, results); err != nil {
			log.Printf("server: follow-up append for run %s failed: %v", runID, err)
		}
		return nil
	})
}

// ListRuns returns all stored runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	encodeJSON(runs, http.StatusOK, w)
}

// GetRun returns a single run.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["run_id"]

	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	encodeJSON(run, http.StatusOK, w)
}

// DeleteRun removes a run.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["run_id"]

	if err := s.store.DeleteRun(r.Context(), runID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// allPassed reports whether no result failed.
func allPassed(results []evaluation.Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// encodeJSON writes v as a JSON response.
func encodeJSON(v any, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}
